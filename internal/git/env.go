package git

import (
	"os"
	"strings"
)

// envOverrides are applied to every invocation. The locale pins git's output
// to a stable, parseable form; the rest disables every interactive credential
// or terminal prompt so a command can never hang waiting for input.
var envOverrides = [...]string{
	"LC_ALL=C.UTF-8",
	"LANG=C.UTF-8",
	"GIT_TERMINAL_PROMPT=0",
	"GIT_ASKPASS=echo",
	"SSH_ASKPASS=echo",
	"GCM_INTERACTIVE=never",
}

// commandEnv merges the inherited process environment with the deterministic
// overrides. Inherited values for overridden keys are dropped so the override
// always wins regardless of environment ordering semantics.
func commandEnv() []string {
	inherited := os.Environ()
	env := make([]string, 0, len(inherited)+len(envOverrides))
	for _, kv := range inherited {
		if overridden(kv) {
			continue
		}
		env = append(env, kv)
	}
	return append(env, envOverrides[:]...)
}

func overridden(kv string) bool {
	name, _, ok := strings.Cut(kv, "=")
	if !ok {
		return false
	}
	for _, o := range envOverrides {
		oname, _, _ := strings.Cut(o, "=")
		if name == oname {
			return true
		}
	}
	return false
}
