package channel

// CTCSSTones is the standard 50-tone CTCSS table both radio families
// index into. The table index IS the wire encoding for Radio-K's tone
// byte fields and feeds Radio-B's tone-Hz*10 field.
var CTCSSTones = []float64{
	67.0, 69.3, 71.9, 74.4, 77.0, 79.7, 82.5, 85.4, 88.5, 91.5,
	94.8, 97.4, 100.0, 103.5, 107.2, 110.9, 114.8, 118.8, 123.0, 127.3,
	131.8, 136.5, 141.3, 146.2, 151.4, 156.7, 159.8, 162.2, 165.5, 167.9,
	171.3, 173.8, 177.3, 179.9, 183.5, 186.2, 189.9, 192.8, 196.6, 199.5,
	203.5, 206.5, 210.7, 218.1, 225.7, 229.1, 233.6, 241.8, 250.3, 254.1,
}

// DTCSCodes is the standard 104-code DTCS table.
var DTCSCodes = []int{
	23, 25, 26, 31, 32, 36, 43, 47, 51, 53,
	54, 65, 71, 72, 73, 74, 114, 115, 116, 122,
	125, 131, 132, 134, 143, 145, 152, 155, 156, 162,
	165, 172, 174, 205, 212, 223, 225, 226, 243, 244,
	245, 246, 251, 252, 255, 261, 263, 265, 266, 271,
	274, 306, 311, 315, 325, 331, 332, 343, 346, 351,
	356, 364, 365, 371, 411, 412, 413, 423, 431, 432,
	445, 446, 452, 454, 455, 462, 464, 465, 466, 503,
	506, 516, 523, 526, 532, 546, 565, 606, 612, 624,
	627, 631, 632, 654, 662, 664, 703, 712, 723, 731,
	732, 734, 743, 754,
}

// TuningSteps is the standard tuning-step enumeration, in Hz.
var TuningSteps = []int{
	5000, 6250, 10000, 12500, 15000, 20000, 25000, 30000, 50000, 100000,
}

// CTCSSIndex returns the table index for a CTCSS tone in Hz, or -1 if it
// is not one of the standard tones.
func CTCSSIndex(hz float64) int {
	for i, t := range CTCSSTones {
		if approxEqual(t, hz) {
			return i
		}
	}
	return -1
}

// DTCSIndex returns the table index for a DTCS code, or -1 if it is not
// one of the standard codes.
func DTCSIndex(code int) int {
	for i, c := range DTCSCodes {
		if c == code {
			return i
		}
	}
	return -1
}

// TuningStepIndex returns the table index for a tuning step in Hz, or -1
// if it is not one of the standard steps.
func TuningStepIndex(hz int) int {
	for i, s := range TuningSteps {
		if s == hz {
			return i
		}
	}
	return -1
}

func approxEqual(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 0.05
}
