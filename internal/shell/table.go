package shell

import "regexp"

// Rule describes how one command's arguments map to file operands.
// New commands are covered by adding table entries, not code paths.
type Rule struct {
	// NoFiles marks content-producing commands whose positional
	// arguments are literal text (echo, printf) or URLs (curl).
	NoFiles bool
	// Files marks file-consuming commands whose trailing positional
	// arguments are file operands.
	Files bool
	// SkipOperands is the number of leading positional arguments that
	// are patterns, expressions, or scripts rather than files
	// (grep's pattern, awk's program, chmod's mode).
	SkipOperands int
	// PatternFlags are flags that supply the pattern or script instead
	// of the first positional (grep -e/-f, sed -e/-f, awk -f). Once one
	// is seen, SkipOperands no longer applies: the positionals are all
	// files.
	PatternFlags []string
	// PathFlags are flags whose value is a file (curl -T, tar -f).
	PathFlags []string
	// SkipFlags are flags whose value is consumed but is not a file
	// (head -n, xargs -I).
	SkipFlags []string
	// AtFlags are flags whose value embeds a file after an "@"
	// (curl -F 'field=@secret', curl --data-binary @secret).
	AtFlags []string
	// AtPositional marks HTTPie-style commands where a positional
	// "field@path" argument uploads a file.
	AtPositional bool
	// Recurse marks wrappers whose remaining arguments form a nested
	// command (xargs, sudo, timeout).
	Recurse bool
	// StdinFeeds marks recursing commands that turn piped input into
	// arguments of the nested command (xargs). When the nested command
	// is file-consuming and no static arguments are present, extraction
	// is incomplete and the caller fails closed.
	StdinFeeds bool
	// SkipRemote drops host:path and scheme://... arguments that name
	// remote, not local, files (scp, rsync, aws s3).
	SkipRemote bool
	// KeyValueFiles are key=value argument keys whose value is a file
	// (dd if= / of=).
	KeyValueFiles []string
	// Find marks find(1), which gets bespoke expression handling.
	Find bool
}

// commandTable maps a command name, optionally followed by subcommand
// words, to its argument rule. Lookup tries the longest key first.
func commandTable() map[string]*Rule {
	readFlags := &Rule{Files: true, SkipFlags: []string{"-n", "--lines", "-c", "--bytes"}}
	consume := &Rule{Files: true}
	grepLike := &Rule{
		Files:        true,
		SkipOperands: 1,
		PathFlags:    []string{"-f", "--file"},
		SkipFlags:    []string{"-e", "--regexp", "-m", "--max-count", "-A", "-B", "-C", "--context", "-d", "--devices"},
		PatternFlags: []string{"-e", "--regexp", "-f", "--file"},
	}
	s3Like := &Rule{Files: true, SkipRemote: true}

	return map[string]*Rule{
		// content-producing: positional args are text, never files
		"echo":   {NoFiles: true},
		"printf": {NoFiles: true},
		"test":   {NoFiles: true},
		"expr":   {NoFiles: true},

		// file-consuming readers
		"cat":       consume,
		"head":      readFlags,
		"tail":      readFlags,
		"less":      consume,
		"more":      consume,
		"bat":       consume,
		"nl":        consume,
		"tac":       consume,
		"strings":   consume,
		"xxd":       consume,
		"od":        consume,
		"hexdump":   consume,
		"wc":        consume,
		"sort":      consume,
		"uniq":      consume,
		"cut":       {Files: true, SkipFlags: []string{"-d", "-f", "-c", "--delimiter", "--fields"}},
		"tr":        {NoFiles: true}, // operands are char sets; reads stdin only
		"diff":      consume,
		"cmp":       consume,
		"file":      consume,
		"stat":      consume,
		"base64":    consume,
		"md5sum":    consume,
		"sha1sum":   consume,
		"sha256sum": consume,
		"sha512sum": consume,
		"shasum":    {Files: true, SkipFlags: []string{"-a", "--algorithm"}},
		"jq":        {Files: true, SkipOperands: 1, SkipFlags: []string{"--arg", "--argjson"}},
		"yq":        {Files: true, SkipOperands: 1},
		"vim":       consume,
		"vi":        consume,
		"nano":      consume,
		"sqlite3":   consume,

		// pattern-first readers: the expression argument is not a file
		"grep":  grepLike,
		"egrep": grepLike,
		"fgrep": grepLike,
		"rg":    grepLike,
		"sed": {
			Files:        true,
			SkipOperands: 1,
			PathFlags:    []string{"-f", "--file"},
			SkipFlags:    []string{"-e", "--expression"},
			PatternFlags: []string{"-e", "--expression", "-f", "--file"},
		},
		"awk":  {Files: true, SkipOperands: 1, PathFlags: []string{"-f"}, SkipFlags: []string{"-F", "-v"}, PatternFlags: []string{"-f"}},
		"gawk": {Files: true, SkipOperands: 1, PathFlags: []string{"-f"}, SkipFlags: []string{"-F", "-v"}, PatternFlags: []string{"-f"}},
		"mawk": {Files: true, SkipOperands: 1, PathFlags: []string{"-f"}, SkipFlags: []string{"-F", "-v"}, PatternFlags: []string{"-f"}},

		// file-consuming writers and movers
		"cp":      consume,
		"mv":      consume,
		"rm":      consume,
		"ln":      consume,
		"shred":   consume,
		"touch":   consume,
		"tee":     consume,
		"install": {Files: true, SkipFlags: []string{"-m", "--mode", "-o", "--owner", "-g", "--group"}},
		"chmod":   {Files: true, SkipOperands: 1},
		"chown":   {Files: true, SkipOperands: 1},
		"chgrp":   {Files: true, SkipOperands: 1},
		"dd":      {KeyValueFiles: []string{"if", "of"}},

		// archivers
		"tar":    {Files: true, PathFlags: []string{"-f", "--file", "-T", "--files-from"}, SkipFlags: []string{"-C", "--directory"}},
		"zip":    consume,
		"unzip":  consume,
		"gzip":   consume,
		"gunzip": consume,
		"zcat":   consume,
		"xz":     consume,
		"zstd":   consume,
		"7z":     {Files: true, SkipOperands: 1},

		// uploaders
		"curl": {
			NoFiles:   true, // positionals are URLs
			PathFlags: []string{"-T", "--upload-file", "-o", "--output", "-K", "--config", "--cacert", "--cert", "--key", "-E"},
			AtFlags:   []string{"-F", "--form", "-d", "--data", "--data-binary", "--data-urlencode", "--data-raw", "--json"},
			SkipFlags: []string{"-H", "--header", "-X", "--request", "-u", "--user", "-A", "--user-agent", "-m", "--max-time"},
		},
		"wget": {
			NoFiles:   true,
			PathFlags: []string{"-O", "--output-document", "-i", "--input-file", "--load-cookies", "--certificate", "--private-key"},
			SkipFlags: []string{"-U", "--user-agent", "-t", "--tries"},
		},
		"http":  {NoFiles: true, AtPositional: true},
		"https": {NoFiles: true, AtPositional: true},
		"xh":    {NoFiles: true, AtPositional: true},
		"scp": {
			Files:      true,
			SkipRemote: true,
			PathFlags:  []string{"-i", "-F"},
			SkipFlags:  []string{"-P", "-o", "-c", "-J"},
		},
		"rsync": {
			Files:      true,
			SkipRemote: true,
			SkipFlags:  []string{"-e", "--rsh", "--exclude", "--include"},
		},
		"aws s3 cp":              s3Like,
		"aws s3 mv":              s3Like,
		"aws s3 sync":            s3Like,
		"gsutil cp":              s3Like,
		"gsutil mv":              s3Like,
		"gsutil rsync":           s3Like,
		"gcloud storage cp":      s3Like,
		"az storage blob upload": {NoFiles: true, PathFlags: []string{"--file", "-f"}},

		// wrappers: the remaining argv is a nested command
		"xargs": {
			Recurse:    true,
			StdinFeeds: true,
			PathFlags:  []string{"-a", "--arg-file"},
			SkipFlags:  []string{"-n", "--max-args", "-P", "--max-procs", "-I", "-L", "-d", "--delimiter", "-s", "--max-chars"},
		},
		"sudo":    {Recurse: true, SkipFlags: []string{"-u", "--user", "-g", "--group"}},
		"doas":    {Recurse: true, SkipFlags: []string{"-u"}},
		"env":     {Recurse: true, SkipFlags: []string{"-u", "--unset", "-C", "--chdir"}},
		"nohup":   {Recurse: true},
		"nice":    {Recurse: true, SkipFlags: []string{"-n"}},
		"time":    {Recurse: true},
		"timeout": {Recurse: true, SkipOperands: 1, SkipFlags: []string{"-s", "--signal", "-k", "--kill-after"}},
		"command": {Recurse: true},

		"find": {Find: true},
	}
}

// sensitiveBasename bounds the default rule for unrecognized commands: a
// bare token with no slash only becomes a candidate when its name alone
// looks like a credential or key file.
var sensitiveBasename = regexp.MustCompile(`(?i)^(` +
	`\.env(\..+)?|.+\.env` + // env files
	`|.+\.(pem|key|p12|pfx|jks|keystore|kdbx|asc)` + // keys and certs
	`|id_(rsa|dsa|ecdsa|ed25519)(\..+)?` + // ssh keys
	`|\.(npmrc|pypirc|netrc|pgpass|htpasswd|git-credentials|s3cfg|boto)` + // tool credentials
	`|_netrc|credentials(\..+)?|secrets?(\..+)?|auth\.json` + // auth files
	`|.*wallet.*|.+\.(sqlite3?|db)` + // wallets, databases
	`)$`)

// remoteArg matches scp/rsync host:path specs and scheme://... URLs, which
// name remote rather than local files.
var remoteArg = regexp.MustCompile(`^([^/@]+@)?[^/:]+:`)
