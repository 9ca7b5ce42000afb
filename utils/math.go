package utils

const (
	// MachineEpsilon is the spacing of float64 values at 1.0 (2^-52)
	MachineEpsilon = 0x1p-52
	// MinNormalFloat64 is the smallest positive normalized float64 (2^-1022)
	MinNormalFloat64 = 0x1p-1022
)
