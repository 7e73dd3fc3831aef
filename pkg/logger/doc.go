// Package logger builds *slog.Logger values for the command line tool and the
// library packages.
//
// New applies functional options and returns a logger whose handler is one of:
//
//   - console (default): colored single lines in the style "[*] message",
//     "[+] found", "[!] problem", rendered with github.com/fatih/color;
//   - text: slog.TextHandler;
//   - json: slog.JSONHandler.
//
// LevelSuccess (between INFO and WARN) marks positive findings; Success logs
// at that level and the text/json handlers print it as "SUCCESS".
//
// Registered ContextExtractor callbacks run on every record logged with a
// context, so values stored there (a search run id, for example) show up as
// attributes.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithVerbose(verbose),
//	    logger.WithContextExtractors(search.LoggerExtractor()),
//	)
//	logger.Success(ctx, log, "Found secret: keyboard cat", logger.Secret("keyboard cat"))
//
// Attribute helpers such as Error, Secret and CookieName keep key names
// consistent. Error and Errors return an empty attribute for nil errors.
// Discard returns a logger that drops everything; library packages fall back
// to it when no logger is supplied.
package logger
