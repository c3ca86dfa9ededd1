package pipeline

func collectStrings(src Source) []string {
	lines := Collect(src)
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.String()
	}
	return out
}
