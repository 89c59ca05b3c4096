package ptr

func ToFloat64(val float64) *float64 {
	return &val
}
