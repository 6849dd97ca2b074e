package main

import "context"

// scriptedOracle feeds canned responses to the state machines so they can
// be exercised without a network.
type scriptedOracle struct {
	wordLength    int
	wordLengthErr error

	verdicts   []GuessVerdict
	verdictErr error
	guessCalls int

	puzzle    SpellingPuzzle
	puzzleErr error

	spellingOK    bool
	spellingErr   error
	spellingCalls int
}

func (o *scriptedOracle) WordLength(_ context.Context, _ uint64) (int, error) {
	if o.wordLengthErr != nil {
		return 0, o.wordLengthErr
	}
	return o.wordLength, nil
}

func (o *scriptedOracle) SubmitGuess(_ context.Context, _ GuessRequest) (GuessVerdict, error) {
	o.guessCalls++
	if o.verdictErr != nil {
		return GuessVerdict{}, o.verdictErr
	}
	if len(o.verdicts) == 0 {
		return GuessVerdict{}, nil
	}
	verdict := o.verdicts[0]
	if len(o.verdicts) > 1 {
		o.verdicts = o.verdicts[1:]
	}
	return verdict, nil
}

func (o *scriptedOracle) SpellingPuzzle(_ context.Context, _ SpellingParams) (SpellingPuzzle, error) {
	if o.puzzleErr != nil {
		return SpellingPuzzle{}, o.puzzleErr
	}
	return o.puzzle, nil
}

func (o *scriptedOracle) CheckSpellingGuess(_ context.Context, _ SpellingParams, _ string) (bool, error) {
	o.spellingCalls++
	if o.spellingErr != nil {
		return false, o.spellingErr
	}
	return o.spellingOK, nil
}
