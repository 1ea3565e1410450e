package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/nerbox/internal/ctxlog"
)

// FileName is the config file searched for next to the executable.
const FileName = "nerbox.hcl"

// File mirrors the attributes a nerbox.hcl file may set. Every attribute
// is optional; zero values mean "not set" and leave the default alone.
type File struct {
	InstallDir       string `hcl:"install_dir,optional"`
	InstallName      string `hcl:"install_name,optional"`
	ArchiveURL       string `hcl:"archive_url,optional"`
	Java             string `hcl:"java,optional"`
	MemoryLimit      string `hcl:"memory_limit,optional"`
	Classifier       string `hcl:"classifier,optional"`
	InputEncoding    string `hcl:"input_encoding,optional"`
	OutputEncoding   string `hcl:"output_encoding,optional"`
	TokenizerFactory string `hcl:"tokenizer_factory,optional"`
	ServerPort       int    `hcl:"server_port,optional"`
}

// FindFile locates the config file to load: the explicit -config path if
// given, else $NERBOX_CONFIG, else nerbox.hcl next to the executable. The
// explicit and environment paths must exist; the sibling file is optional.
func FindFile(explicit string, env map[string]string) (string, bool, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", false, fmt.Errorf("config file %s: %w", explicit, err)
		}
		return explicit, true, nil
	}
	if fromEnv := env[EnvConfigFile]; fromEnv != "" {
		if _, err := os.Stat(fromEnv); err != nil {
			return "", false, fmt.Errorf("config file %s (from %s): %w", fromEnv, EnvConfigFile, err)
		}
		return fromEnv, true, nil
	}
	sibling := filepath.Join(executableDir(), FileName)
	if _, err := os.Stat(sibling); err == nil {
		return sibling, true, nil
	}
	return "", false, nil
}

// LoadFile parses an HCL config file. The file body can reference the
// environment through an `env` object variable, e.g.
//
//	install_dir = "${env.HOME}/ner"
func LoadFile(ctx context.Context, path string, env map[string]string) (*File, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading config file.", "path", path)

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse %s: %w", path, diags)
	}

	var file File
	diags = gohcl.DecodeBody(hclFile.Body, evalContext(env), &file)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode %s: %w", path, diags)
	}

	logger.Debug("Config file loaded.")
	return &file, nil
}

// evalContext exposes the resolved environment map as an `env` object so
// config files can interpolate environment values.
func evalContext(env map[string]string) *hcl.EvalContext {
	vars := make(map[string]cty.Value, len(env))
	for k, v := range env {
		vars[k] = cty.StringVal(v)
	}
	envVal := cty.EmptyObjectVal
	if len(vars) > 0 {
		envVal = cty.ObjectVal(vars)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"env": envVal},
	}
}
