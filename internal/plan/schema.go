package plan

import "github.com/hashicorp/hcl/v2"

// taskBlock is the raw HCL shape of a `task` block:
//
//	task "resolve" "dns_google" {
//	  duration   = 5
//	  depends_on = ["warmup"]
//	  parameters = { fqdn = "google.com" }
//	}
type taskBlock struct {
	Kind       string         `hcl:"kind,label"`
	Name       string         `hcl:"name,label"`
	Duration   int            `hcl:"duration"`
	DependsOn  []string       `hcl:"depends_on,optional"`
	Parameters hcl.Expression `hcl:"parameters,optional"`
}

// fileRoot decodes all top-level blocks of a plan file.
type fileRoot struct {
	Tasks  []*taskBlock `hcl:"task,block"`
	Remain hcl.Body     `hcl:",remain"`
}
