package state

import (
	"time"
)

// newLocalEnv creates a new LocalEnv instance with default values
func newLocalEnv() *LocalEnv {
	return &LocalEnv{
		start: time.Now(),
		// used when configuration does not point to a book logo
		DefaultLogo: []byte(`<svg viewBox="0 0 128 128" xmlns="http://www.w3.org/2000/svg">
  <rect x="24" y="16" width="80" height="96" rx="6"
        fill="none" stroke="black" stroke-width="3"/>
  <path d="M24 22
           C18 22 14 26 14 32
           V104
           C14 110 18 114 24 114
           H98"
        fill="none" stroke="black" stroke-width="3"/>
  <line x1="38" y1="40" x2="90" y2="40" stroke="black" stroke-width="3"/>
  <line x1="38" y1="56" x2="90" y2="56" stroke="black" stroke-width="2"/>
  <line x1="38" y1="68" x2="90" y2="68" stroke="black" stroke-width="2"/>
  <line x1="38" y1="80" x2="74" y2="80" stroke="black" stroke-width="2"/>
</svg>`),
	}
}
