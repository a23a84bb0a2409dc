package requestcontext

// rejection stops the request with status and a public message instead of a 500.
type rejection struct {
	status  int
	message string
}

func reject(status int, message string) error {
	return rejection{status: status, message: message}
}

func (r rejection) Error() string {
	return r.message
}
