package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/cookiemonster/pkg/sample"
	"github.com/dmitrymomot/cookiemonster/pkg/wordlist"
)

// Options are the parsed command line flags.
type Options struct {
	Batch      bool
	Cookie     string
	Encode     bool
	InputFile  string
	Name       string
	Output     string
	Port       int
	Host       string
	Secret     string
	Signature  string
	Verbose    bool
	Wordlist   string
	Digest     string
	LogFormat  string
	NoColor    bool
	NoProgress bool

	wordlistSet bool
}

func (o *Options) bind(cmd *cobra.Command, env Env) {
	f := cmd.Flags()
	f.BoolVarP(&o.Batch, "batch", "b", false, "Enable batch mode.")
	f.StringVarP(&o.Cookie, "cookie", "c", "", "The session cookie to use when not using batch mode.")
	f.BoolVarP(&o.Encode, "encode", "e", false, "Enable encode mode.")
	f.StringVarP(&o.InputFile, "input-file", "f", "", "The JSON (or YAML) file with the cookie data to analyse in batch mode / the JSON data to be encoded in encode mode.")
	f.StringVarP(&o.Name, "name", "n", env.Name, "The cookie name to use when not using batch mode.")
	f.StringVarP(&o.Output, "output", "o", "", "The file to output the results to (also s3://bucket/key or redis://host/db?key=list).")
	f.IntVarP(&o.Port, "port", "p", env.Port, "The port to bind the local test server to.")
	f.StringVar(&o.Host, "host", env.Host, "The address to bind the local test server to.")
	f.StringVarP(&o.Secret, "secret", "k", "", "The secret key to use when using encode mode.")
	f.StringVarP(&o.Signature, "signature", "s", "", "The value of the session signature cookie to use when not using batch mode.")
	f.BoolVarP(&o.Verbose, "verbose", "v", false, "Output verbose messages on internal operations.")
	f.StringVarP(&o.Wordlist, "wordlist", "w", env.Wordlist, "The wordlist to use as a source of possible cookie secrets (default: built-in list).")
	f.StringVar(&o.Digest, "digest", env.Digest, "The HMAC digest used to sign cookies: sha1, sha256 or sha512.")
	f.StringVar(&o.LogFormat, "log-format", env.LogFormat, "Log output format: console, text or json.")
	f.BoolVar(&o.NoColor, "no-color", false, "Disable colored output.")
	f.BoolVar(&o.NoProgress, "no-progress", false, "Disable the progress bar.")
}

// validate checks flag combinations before any network activity. The
// messages are shown to the user as they are.
func (o *Options) validate() error {
	if o.Encode {
		if o.Secret == "" {
			return invalid("A secret key must be specified with the --secret option.")
		}
	} else {
		if o.wordlistSet && o.Wordlist == "" {
			return invalid("A wordlist must be specified with the --wordlist option.")
		}
		if o.Wordlist != "" && !wordlist.Exists(o.Wordlist) {
			return invalid("The specified wordlist file does not exist.")
		}
	}

	if o.Batch || o.Encode {
		if o.InputFile == "" {
			return invalid("An input file must be specified with the --input-file option.")
		}
		if !fileExists(o.InputFile) {
			return invalid("The specified input file does not exist.")
		}
	}

	if !o.Batch && !o.Encode {
		if o.Cookie == "" {
			return invalid("A session cookie must be specified with the --cookie option.")
		}
		if o.Signature == "" {
			return invalid("A cookie signature must be specified with the --signature option.")
		}
	}

	if !o.Batch && o.Name == "" {
		return invalid("A cookie name must be specified with the --name option.")
	}

	return nil
}

// groups returns the samples to test: the batch file, or the single cookie
// pair given on the command line.
func (o *Options) groups() ([]sample.Group, error) {
	if o.Batch {
		return sample.LoadBatch(o.InputFile)
	}
	return sample.Single(o.Name, o.Cookie, o.Signature), nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
