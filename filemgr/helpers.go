package filemgr

import "strings"

func contains(allowed []string, v string) bool {
	v = strings.ToLower(v)
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}

func joinErrs(errs []string) string {
	return strings.Join(errs, "; ")
}
