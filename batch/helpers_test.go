package batch_test

import "strconv"

func itoa(u uint32) string {
	return strconv.FormatUint(uint64(u), 10)
}
