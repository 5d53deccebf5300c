package controller

import "github.com/ivlev/transformtoy/internal/interpolator"

// Event is a user action delivered to a Controller.
type Event interface{ isEvent() }

// SliderInput sets progress directly.
type SliderInput struct{ Value float64 }

// TogglePlay starts or stops free play.
type TogglePlay struct{}

type StepFirst struct{}
type StepPrev struct{}
type StepNext struct{}
type StepLast struct{}

// Reset stops everything and returns progress to 0.
type Reset struct{}

type SetDirection struct{ Dir interpolator.Direction }

type SetLoop struct{ Loop bool }

func (SliderInput) isEvent()  {}
func (TogglePlay) isEvent()   {}
func (StepFirst) isEvent()    {}
func (StepPrev) isEvent()     {}
func (StepNext) isEvent()     {}
func (StepLast) isEvent()     {}
func (Reset) isEvent()        {}
func (SetDirection) isEvent() {}
func (SetLoop) isEvent()      {}
