// Package cookiesession stores a whole session in a pair of signed cookies,
// compatible with the Express cookie-session middleware.
//
// The value cookie carries base64 encoded JSON, the "<name>.sig" cookie the
// keyed HMAC produced by pkg/cookie. Handlers read and change the session
// through FromContext; changes are written back before the response header.
//
//	mgr, _ := cookie.New([]string{"keyboard cat"})
//	mw := cookiesession.New("session", mgr)
//	http.ListenAndServe(addr, mw(handler))
package cookiesession
