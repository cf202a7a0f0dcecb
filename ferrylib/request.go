package ferrylib

// Request describes a single exchange against the client's origin. Host and
// UserAgent are filled in by the client before serialization.
type Request struct {
	Method string
	Path   string
	Header map[string]string
	Body   []byte

	Host      string
	UserAgent string

	// UpgradeConnection, when set, takes over the raw stream after the
	// response head has been parsed. The stream is not returned to the pool.
	UpgradeConnection func(res *Response, stream DuplexStream) error
}

func NewRequest(method, path string) *Request {
	return &Request{
		Method: method,
		Path:   path,
		Header: make(map[string]string),
	}
}
