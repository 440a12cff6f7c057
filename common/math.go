package common

const (
	BaseWidth  = 960
	BaseHeight = 540
)

func Lerp(a, b, t float32) float32 {
	return a + t*(b-a)
}

// Approach moves v toward zero by step without overshooting.
func Approach(v, step float64) float64 {
	if v > step {
		return v - step
	}
	if v < -step {
		return v + step
	}
	return 0
}
