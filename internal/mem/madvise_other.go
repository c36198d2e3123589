//go:build unix && !linux

package mem

func adviseHuge(data []byte) {}
