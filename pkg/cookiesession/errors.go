package cookiesession

import "errors"

var (
	ErrDecode = errors.New("cookiesession.decode")
	ErrEncode = errors.New("cookiesession.encode")
)
