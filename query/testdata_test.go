package query

func people() Collection {
	return Collection{
		{"name": "Ana", "age": 30, "city": "X", "profession": "engineer"},
		{"name": "Bo", "age": 25, "city": "Y", "profession": "teacher"},
		{"name": "Cy", "age": 41, "city": "Z", "profession": "engineer"},
		{"name": "Di", "age": 30, "city": "Y", "profession": "doctor"},
		{"name": "Ed", "age": 19, "city": "X", "profession": "student"},
	}
}

func names(c Collection) []string {
	out := make([]string, len(c))
	for i, r := range c {
		out[i], _ = r["name"].(string)
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
