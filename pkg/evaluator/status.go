package evaluator

// UnknownStatus is returned by StatusLabel for codes that are
// not in the table.
const UnknownStatus = "Unknown"

var statusLabels = map[int32]string{
	200: "OK",
	201: "Created",
	204: "No Content",
	400: "Bad Request",
	401: "Unauthorized",
	403: "Forbidden",
	404: "Not Found",
	500: "Server Error",
	502: "Bad Gateway",
	503: "Service Unavailable",
}

// StatusLabel maps an HTTP-like status code to its label.
func (e *Evaluator) StatusLabel(code int32) string {
	if label, ok := statusLabels[code]; ok {
		return label
	}
	return UnknownStatus
}
