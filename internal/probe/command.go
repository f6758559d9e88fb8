// Package probe maps a task's declared kind and parameters to a concrete
// external command and runs it with the plan's timeout policy. It is the
// scheduler's executor collaborator.
package probe

import (
	"fmt"

	"github.com/chrisiswright/WhiteFiberCC/internal/taskgraph"
)

// The probe kinds a plan may declare.
const (
	KindResolve    = "resolve"
	KindTraceroute = "traceroute"
	KindIperf3     = "iperf3"
)

// KnownKind reports whether the kind names a supported probe.
func KnownKind(kind string) bool {
	switch kind {
	case KindResolve, KindTraceroute, KindIperf3:
		return true
	default:
		return false
	}
}

// BuildCommand translates a task into the shell command line for its probe.
// It returns an error for an unknown kind or a missing required parameter;
// the runner surfaces that as a task failure, never a crash.
func BuildCommand(t taskgraph.Task) (string, error) {
	switch t.Kind {
	case KindResolve:
		fqdn, err := param(t, "fqdn")
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("dig +short %s", fqdn), nil

	case KindTraceroute:
		endpoint, err := param(t, "endpoint")
		if err != nil {
			return "", err
		}
		count, err := param(t, "count")
		if err != nil {
			return "", err
		}
		if t.Parameters["tool"] == "mtr" {
			return fmt.Sprintf("mtr -nz -c %s %s --report", count, endpoint), nil
		}
		return fmt.Sprintf("traceroute -q %s %s", count, endpoint), nil

	case KindIperf3:
		endpoint, err := param(t, "endpoint")
		if err != nil {
			return "", err
		}
		port, err := param(t, "port")
		if err != nil {
			return "", err
		}
		duration, err := param(t, "duration")
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("iperf3 -c %s -p %s -t %s", endpoint, port, duration), nil

	default:
		return "", fmt.Errorf("unknown probe kind %q", t.Kind)
	}
}

func param(t taskgraph.Task, key string) (string, error) {
	v, ok := t.Parameters[key]
	if !ok || v == "" {
		return "", fmt.Errorf("%s probe requires parameter %q", t.Kind, key)
	}
	return v, nil
}
