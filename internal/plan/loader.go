// Package plan loads probe plans from HCL files into task definitions.
// It validates field shape (names, durations, kinds, parameter values);
// dependency existence and acyclicity are the graph validator's job.
package plan

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/chrisiswright/WhiteFiberCC/internal/ctxlog"
	"github.com/chrisiswright/WhiteFiberCC/internal/probe"
	"github.com/chrisiswright/WhiteFiberCC/internal/taskgraph"
)

// ErrInvalidPlan marks any structural problem found while loading a plan.
var ErrInvalidPlan = errors.New("invalid plan")

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidPlan}, args...)...)
}

// Loader reads plan files from disk.
type Loader struct{}

// NewLoader creates a plan loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses the plan at path, which may be a single .hcl file or a
// directory searched recursively. Tasks keep file order, with files taken
// in sorted path order so a plan split across files stays deterministic.
func (l *Loader) Load(ctx context.Context, path string) ([]taskgraph.Task, error) {
	logger := ctxlog.FromContext(ctx)

	files, err := findPlanFiles(path)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, invalidf("no plan files found at %s", path)
	}
	logger.Debug("Discovered plan files.", "count", len(files))

	parser := hclparse.NewParser()
	var tasks []taskgraph.Task
	names := make(map[string]string) // task name -> file it came from

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, invalidf("parsing %s: %s", file, diags.Error())
		}

		var root fileRoot
		if diags := gohcl.DecodeBody(hclFile.Body, nil, &root); diags.HasErrors() {
			return nil, invalidf("decoding %s: %s", file, diags.Error())
		}

		for _, block := range root.Tasks {
			task, err := translateTask(block)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", file, err)
			}
			if prev, dup := names[task.Name]; dup {
				return nil, invalidf("duplicate task name %q (first defined in %s)", task.Name, prev)
			}
			names[task.Name] = file
			tasks = append(tasks, task)
		}
	}

	logger.Debug("Plan loaded.", "tasks", len(tasks))
	return tasks, nil
}

// translateTask converts a decoded block into a task definition, enforcing
// the field-shape rules the scheduler relies on as preconditions.
func translateTask(block *taskBlock) (taskgraph.Task, error) {
	var t taskgraph.Task

	if block.Name == "" {
		return t, invalidf("task block with empty name")
	}
	if !probe.KnownKind(block.Kind) {
		return t, invalidf("task %q: unknown kind %q", block.Name, block.Kind)
	}
	if block.Duration <= 0 {
		return t, invalidf("task %q: duration must be positive, got %d", block.Name, block.Duration)
	}

	params, err := decodeParameters(block)
	if err != nil {
		return t, err
	}

	return taskgraph.Task{
		Name:       block.Name,
		Duration:   block.Duration,
		DependsOn:  block.DependsOn,
		Kind:       block.Kind,
		Parameters: params,
	}, nil
}

// decodeParameters evaluates the optional `parameters` attribute into a
// string map. Values are converted through cty so numbers and bools written
// without quotes still come out as the strings the command builder expects.
func decodeParameters(block *taskBlock) (map[string]string, error) {
	if block.Parameters == nil {
		return nil, nil
	}

	val, diags := block.Parameters.Value(nil)
	if diags.HasErrors() {
		return nil, invalidf("task %q: parameters: %s", block.Name, diags.Error())
	}
	if val.IsNull() {
		return nil, nil
	}
	if !val.Type().IsObjectType() && !val.Type().IsMapType() {
		return nil, invalidf("task %q: parameters must be a map, got %s", block.Name, val.Type().FriendlyName())
	}

	params := make(map[string]string)
	for it := val.ElementIterator(); it.Next(); {
		k, v := it.Element()
		str, err := convert.Convert(v, cty.String)
		if err != nil || str.IsNull() {
			return nil, invalidf("task %q: parameter %q is not a string value", block.Name, k.AsString())
		}
		params[k.AsString()] = str.AsString()
	}
	return params, nil
}

// findPlanFiles resolves path to the list of .hcl files it names, sorted.
func findPlanFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, invalidf("plan path %s does not exist", path)
		}
		return nil, fmt.Errorf("accessing plan path %s: %w", path, err)
	}

	if !info.IsDir() {
		return []string{path}, nil
	}

	var files []string
	err = filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(p) == ".hcl" {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
