// Package project reads the javil.yml configuration that names a
// project's classpath.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/viper"
)

// ConfigName is the base name of the configuration file, javil.yml.
const ConfigName = "javil"

// Project is a directory whose javil.yml lists the classpath to load.
//
//	classpath:
//	  - build/classes
//	  - /usr/lib/jvm/java-21/lib/rt.jar
//	lib_dir: lib
//	verbosity: 1
//
// Every key can be overridden from the environment with the JAVIL_ prefix;
// JAVIL_CLASSPATH uses the platform's path list separator.
type Project struct {
	RootDir    string
	ConfigFile string
	Classpath  []string
	LibDir     string
	Format     string
	Verbosity  int
}

// Load reads the project in the current directory.
func Load() (*Project, error) {
	return LoadFrom(".")
}

// LoadFrom reads javil.yml from rootDir. A missing file is not an error:
// the project then has an empty classpath and the defaults.
func LoadFrom(rootDir string) (*Project, error) {
	v := newViper()
	v.SetConfigName(ConfigName)
	v.AddConfigPath(rootDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read %s.yml: %w", ConfigName, err)
		}
	}
	return fromViper(v, rootDir), nil
}

// LoadFile reads the configuration at path. Relative entries are taken
// from the file's directory.
func LoadFile(path string) (*Project, error) {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return fromViper(v, filepath.Dir(path)), nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")

	v.SetEnvPrefix("JAVIL")
	v.AutomaticEnv()

	v.SetDefault("lib_dir", "lib")
	v.SetDefault("format", "line")
	v.SetDefault("verbosity", 0)
	return v
}

func fromViper(v *viper.Viper, rootDir string) *Project {
	p := &Project{
		RootDir:    rootDir,
		ConfigFile: v.ConfigFileUsed(),
		LibDir:     resolvePath(rootDir, v.GetString("lib_dir")),
		Format:     v.GetString("format"),
		Verbosity:  v.GetInt("verbosity"),
	}
	for _, entry := range classpathSetting(v) {
		p.Classpath = append(p.Classpath, resolvePath(rootDir, entry))
	}
	return p
}

// classpathSetting accepts a YAML list or, from the environment, a single
// separator-joined string.
func classpathSetting(v *viper.Viper) []string {
	if s, ok := v.Get("classpath").(string); ok {
		return filepath.SplitList(s)
	}
	return v.GetStringSlice("classpath")
}

// resolvePath expands environment variables in entry and anchors a
// relative result at rootDir.
func resolvePath(rootDir, entry string) string {
	entry = os.ExpandEnv(entry)
	if entry == "" || filepath.IsAbs(entry) {
		return entry
	}
	return filepath.Join(rootDir, entry)
}

// ClasspathEntries returns the configured classpath followed by the jars
// in the lib directory, sorted by name. A missing lib directory adds
// nothing.
func (p *Project) ClasspathEntries() ([]string, error) {
	entries := slices.Clone(p.Classpath)
	if p.LibDir == "" {
		return entries, nil
	}

	dir, err := os.ReadDir(p.LibDir)
	if errors.Is(err, os.ErrNotExist) {
		return entries, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read lib directory: %w", err)
	}

	var jars []string
	for _, e := range dir {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".jar") {
			jars = append(jars, filepath.Join(p.LibDir, e.Name()))
		}
	}
	slices.Sort(jars)
	return append(entries, jars...), nil
}
