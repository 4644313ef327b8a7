// Package jobname generates collision-free names for submitted jobs.
package jobname

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// maxNameLen matches the control plane's limit on job names.
const maxNameLen = 63

// JobName builds a unique job name from a caller prefix. Timestamps alone
// collide across rapid repeated runs, so a short random suffix is appended.
// The result is lowercase, hyphen-separated, and at most 63 characters.
func JobName(prefix string) string {
	prefix = sanitizePrefix(prefix)
	if prefix == "" {
		prefix = "job"
	}

	stamp := time.Now().UTC().Format("20060102-150405")
	suffix := uuid.New().String()[:8]

	// prefix gets whatever room the fixed parts leave.
	room := maxNameLen - len(stamp) - len(suffix) - 2
	if len(prefix) > room {
		prefix = prefix[:room]
		prefix = strings.TrimRight(prefix, "-")
	}

	return fmt.Sprintf("%s-%s-%s", prefix, stamp, suffix)
}

// sanitizePrefix lowercases and strips characters the control plane rejects
// in resource names.
func sanitizePrefix(s string) string {
	s = strings.ToLower(s)
	var b strings.Builder
	lastHyphen := true // swallow leading hyphens
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		case r == '-' || r == '_' || r == '.' || r == ' ' || r == '/':
			if !lastHyphen {
				b.WriteRune('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
