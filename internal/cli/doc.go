// Package cli implements the cookiemonster command line.
//
// Default flag values come from COOKIE_MONSTER_* environment variables (see
// Env), optionally loaded from a .env file.
package cli
