// Package oracle runs a short-lived HTTP endpoint that verifies and issues
// Express cookie-session cookies for one cookie name and one secret.
//
// A search tests a candidate secret by starting an oracle with it and
// replaying captured cookie pairs:
//
//	srv, err := oracle.Start(ctx, oracle.Config{CookieName: "session", CookieSecret: "keyboard cat", Port: 3000})
//	if err != nil {
//		return err
//	}
//	defer srv.Stop(context.Background())
//
//	verdict, err := srv.Verify(ctx, "eyJmb28iOiJiYXIifQ==", "LVMVxSNPdU_G8S3mkjlShUD78s4")
//
// The wire contract is plain HTTP: GET / answers with the verified session or
// {"cookie_monster_no_likey": true}; POST / signs a JSON object and returns the
// cookies in Set-Cookie headers.
package oracle
