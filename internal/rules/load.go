package rules

import (
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"
)

// LoadMode controls how errors are handled during pack loading.
type LoadMode int

const (
	// LoadModeFailFast stops on the first error encountered.
	LoadModeFailFast LoadMode = iota
	// LoadModeCollectAll collects all errors before returning.
	LoadModeCollectAll
)

// LoadResult contains a loaded pack plus loading metadata.
type LoadResult struct {
	Pack      *Pack
	CUEValue  cue.Value // Raw CUE value for additional processing
	FileCount int       // Number of CUE files found
}

// Load reads a pattern pack from a directory of .cue files.
//
// The pack schema is a top-level "pattern" struct (one field per
// pattern) and an optional "responses" struct; response pools missing
// from the pack inherit the built-in defaults.
//
// If mode is LoadModeFailFast, the first error aborts the load. If
// mode is LoadModeCollectAll, compilation continues past bad patterns
// and all errors are returned together with whatever compiled.
func Load(dir string, mode LoadMode) (*LoadResult, []error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("pack directory not found: %s", dir)}}
	}
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing pack directory: %v", err)}}
	}
	if !info.IsDir() {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("not a directory: %s", dir)}}
	}

	cueFiles, err := findCUEFiles(dir)
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeScanError, Message: fmt.Sprintf("error scanning directory: %v", err)}}
	}
	if len(cueFiles) == 0 {
		return nil, []error{&LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("no CUE files found in %s", dir)}}
	}

	ctx := cuecontext.New()
	instances := load.Instances([]string{"."}, &load.Config{Dir: dir})
	if len(instances) == 0 {
		return nil, []error{&LoadError{Code: ErrCodeLoadFailed, Message: "no CUE instances loaded"}}
	}
	inst := instances[0]
	if inst.Err != nil {
		return nil, []error{&LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("loading CUE files: %v", inst.Err)}}
	}

	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return nil, []error{&LoadError{Code: ErrCodeBuild, Message: fmt.Sprintf("building CUE value: %v", err)}}
	}

	result := &LoadResult{CUEValue: value, FileCount: len(cueFiles)}

	pack, errs := compilePack(value, mode)
	result.Pack = pack
	return result, errs
}

// compilePack extracts patterns and responses from a built CUE value.
func compilePack(value cue.Value, mode LoadMode) (*Pack, []error) {
	var errs []error
	pack := &Pack{Responses: Builtin().Responses}

	patternsVal := value.LookupPath(cue.ParsePath("pattern"))
	if patternsVal.Exists() {
		iter, iterErr := patternsVal.Fields()
		if iterErr != nil {
			errs = append(errs, &LoadError{Code: ErrCodeGeneric, Message: fmt.Sprintf("iterating patterns: %v", iterErr)})
			if mode == LoadModeFailFast {
				return pack, errs
			}
		} else {
			for iter.Next() {
				p, compileErr := CompilePattern(iter.Label(), iter.Value())
				if compileErr != nil {
					errs = append(errs, compileErr)
					if mode == LoadModeFailFast {
						return pack, errs
					}
					continue
				}
				pack.Patterns = append(pack.Patterns, *p)
			}
		}
	}

	responsesVal := value.LookupPath(cue.ParsePath("responses"))
	if responsesVal.Exists() {
		pools, compileErr := CompileResponses(responsesVal, pack.Responses)
		if compileErr != nil {
			errs = append(errs, compileErr)
			if mode == LoadModeFailFast {
				return pack, errs
			}
		} else {
			pack.Responses = *pools
		}
	}

	if len(pack.Patterns) == 0 && len(errs) == 0 {
		errs = append(errs, &LoadError{Code: ErrCodeGeneric, Message: "no patterns found in pack"})
	}

	return pack, errs
}

// findCUEFiles walks the directory and returns all .cue file paths.
func findCUEFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(path) == ".cue" {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}
