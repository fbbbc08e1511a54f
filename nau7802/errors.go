package nau7802

import (
	"errors"
	"fmt"
)

// Op names the logical bus operation that failed.
type Op string

const (
	OpGetRegister     Op = "get register"
	OpSetRegister     Op = "set register"
	OpRequestRegister Op = "request register"
	OpReadConversion  Op = "read conversion"
)

// OpError wraps a transport failure with the operation and register it hit.
// The underlying transport error is available through errors.Unwrap.
type OpError struct {
	Op       Op
	Register Register
	Err      error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("nau7802: %s %#02x: %v", e.Op, byte(e.Register), e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }

// Protocol failures carry no underlying cause.
var (
	ErrPowerupFailed     = errors.New("nau7802: power up not acknowledged in time")
	ErrReadTimeout       = errors.New("nau7802: conversion not ready in time")
	ErrCalibrationFailed = errors.New("nau7802: device reported calibration failure")
)
