// SOL runtime - runs a SOL program given as its XML syntax tree
package main

import (
	"bufio"
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"

	"github.com/tliron/commonlog"

	"github.com/chazu/sol/manifest"
	"github.com/chazu/sol/pkg/ast"
	"github.com/chazu/sol/vm"

	_ "github.com/tliron/commonlog/simple"
)

var log = commonlog.GetLogger("sol.cmd")

// Exit codes.
const (
	exitOK                = 0
	exitParameter         = 10
	exitInputFile         = 11
	exitMalformedXML      = 41
	exitInvalidStructure  = 42
	exitDoesNotUnderstand = 51
	exitTypeError         = 52
	exitValueError        = 53
	exitInternal          = 99
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// verbosity counts repeated -v flags.
type verbosity int

func (v *verbosity) String() string   { return strconv.Itoa(int(*v)) }
func (v *verbosity) IsBoolFlag() bool { return true }

func (v *verbosity) Set(s string) error {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	if b {
		*v++
	}
	return nil
}

type flags struct {
	source   string
	input    string
	config   string
	cache    string
	closures string
	setters  string
	verbose  verbosity
}

func parseFlags(args []string, stderr io.Writer) (*flags, error) {
	f := &flags{}
	set := flag.NewFlagSet("sol", flag.ContinueOnError)
	set.SetOutput(stderr)
	set.StringVar(&f.source, "source", "", "XML source file (default stdin)")
	set.StringVar(&f.input, "input", "", "Input file for String read (default stdin)")
	set.StringVar(&f.config, "config", "", "Configuration file (default: sol.toml found upward from the working directory)")
	set.StringVar(&f.cache, "cache", "", "Directory for cached parsed programs")
	set.StringVar(&f.closures, "closures", "", "Closure policy: dynamic or lexical")
	set.StringVar(&f.setters, "setters", "", "Setter policy: fallback or eager")
	set.Var(&f.verbose, "v", "Verbose logging (repeat for more)")

	set.Usage = func() {
		fmt.Fprintf(stderr, "Usage: sol [options]\n\n")
		fmt.Fprintf(stderr, "Runs the SOL program in the XML source and sends run to a new Main.\n")
		fmt.Fprintf(stderr, "At least one of -source and -input must name a file.\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		set.PrintDefaults()
	}

	if err := set.Parse(args); err != nil {
		return nil, err
	}
	if set.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", set.Args())
	}
	if f.source == "" && f.input == "" {
		return nil, errors.New("-source and -input cannot both be stdin")
	}
	return f, nil
}

// run is the whole command; it returns the process exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	f, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitParameter
	}

	m, code, err := loadConfig(f)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return code
	}
	configureLogging(m, f)

	opts := m.Options()
	if f.closures != "" {
		opts.Closures = vm.ClosurePolicy(f.closures)
	}
	if f.setters != "" {
		opts.Setters = vm.SetterPolicy(f.setters)
	}
	if err := opts.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitParameter
	}

	source, err := readSource(f.source, stdin)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitInputFile
	}

	cache := &ast.Cache{Dir: m.CacheDir()}
	if f.cache != "" {
		cache.Dir = f.cache
	}
	prog, err := loadProgram(cache, source)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		switch {
		case errors.Is(err, ast.ErrMalformedXML):
			return exitMalformedXML
		case errors.Is(err, ast.ErrInvalidStructure):
			return exitInvalidStructure
		}
		return exitInternal
	}

	input := stdin
	if f.input != "" {
		file, err := os.Open(f.input)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitInputFile
		}
		defer file.Close()
		input = file
	}

	out := bufio.NewWriter(stdout)
	defer out.Flush()

	machine, err := vm.NewVM(
		vm.WithOptions(opts),
		vm.WithInput(vm.NewLineReader(input)),
		vm.WithOutput(out),
	)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitInternal
	}
	log.Infof("running %s with closures=%s setters=%s", describe(f.source), opts.Closures, opts.Setters)

	if _, err := machine.Run(prog); err != nil {
		out.Flush()
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCodeFor(err)
	}
	return exitOK
}

// loadConfig returns the explicit -config file, the sol.toml found from
// the working directory, or the defaults.
func loadConfig(f *flags) (*manifest.Manifest, int, error) {
	var m *manifest.Manifest
	var err error
	if f.config != "" {
		m, err = manifest.LoadFile(f.config)
	} else {
		m, err = manifest.FindAndLoad(".")
	}
	if err != nil {
		var pe *fs.PathError
		if errors.As(err, &pe) {
			return nil, exitInputFile, err
		}
		return nil, exitParameter, err
	}
	if m == nil {
		m = manifest.Default()
	}
	return m, exitOK, nil
}

func configureLogging(m *manifest.Manifest, f *flags) {
	level := m.Log.Verbosity
	if int(f.verbose) > level {
		level = int(f.verbose)
	}
	var path *string
	if p := m.LogFile(); p != "" {
		path = &p
	}
	commonlog.Configure(level, path)
}

func readSource(path string, stdin io.Reader) ([]byte, error) {
	if path == "" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

// loadProgram parses source, going through the cache when it is enabled.
func loadProgram(cache *ast.Cache, source []byte) (*ast.Program, error) {
	if prog, ok, err := cache.Load(source); err != nil {
		log.Warningf("ignoring program cache: %v", err)
	} else if ok {
		return prog, nil
	}

	prog, err := ast.ParseXML(bytes.NewReader(source))
	if err != nil {
		return nil, err
	}
	if err := cache.Store(source, prog); err != nil {
		log.Warningf("could not cache program: %v", err)
	}
	return prog, nil
}

func exitCodeFor(err error) int {
	switch vm.KindOf(err) {
	case vm.KindDoesNotUnderstand:
		return exitDoesNotUnderstand
	case vm.KindTypeError:
		return exitTypeError
	case vm.KindValueError:
		return exitValueError
	}
	return exitInternal
}

func describe(source string) string {
	if source == "" {
		return "<stdin>"
	}
	return source
}
