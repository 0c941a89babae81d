package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/npillmayer/tinyfont/internal/fontload"
	"github.com/npillmayer/tinyfont/ot"
	"github.com/npillmayer/tinyfont/otgen"
	"github.com/pterm/pterm"
)

// tracer traces with key 'tinyfont.cli'
func tracer() tracing.Trace {
	return tracing.Select("tinyfont.cli")
}

func main() {
	initDisplay()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":      "go",
		"trace.tinyfont.cli":   "Info",
		"trace.tinyfont.gen":   "Error",
		"trace.tinyfont.ot":    "Error",
		"trace.tinyfont.query": "Error",
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())

	// command line flags
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	char := flag.String("char", "", "Character to generate a font for, e.g. A or U+20AC")
	fontname := flag.String("font", "", "Font to load (binary, base64 or data URI)")
	flag.Parse()
	tracer().SetTraceLevel(tracing.LevelError)    // will set the correct level later
	pterm.Info.Println("Welcome to TinyFont CLI") // colored welcome message
	//
	// set up REPL
	repl, err := readline.New("tf > ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	intp := &Intp{repl: repl, gen: otgen.NewGenerator()}
	//
	// generate or load a font to start with
	if *fontname != "" {
		err = intp.loadFont(*fontname)
	} else if *char != "" {
		err = intp.generateFont(*char)
	}
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(4)
	}
	//
	// start receiving commands
	pterm.Info.Println("Quit with <ctrl>D") // inform user how to stop the CLI
	switch *tlevel {
	case "Debug":
		tracer().SetTraceLevel(tracing.LevelDebug)
	case "Info":
		tracer().SetTraceLevel(tracing.LevelInfo)
	case "Error":
		tracer().SetTraceLevel(tracing.LevelError)
	default:
		tracer().Errorf("Invalid trace level: %s", *tlevel)
		os.Exit(5)
	}
	tracer().Infof("Trace level is %s", *tlevel)
	intp.REPL() // go into interactive mode
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Intp is our interpreter object
type Intp struct {
	repl  *readline.Instance
	gen   *otgen.Generator
	font  *fontload.TinyFont
	table ot.Table
}

func (intp *Intp) String() string {
	if intp == nil || intp.font == nil {
		return "()"
	}
	sb := strings.Builder{}
	sb.WriteString(fmt.Sprintf("( font=%s", intp.font.Source))
	if intp.table != nil {
		sb.WriteString(fmt.Sprintf(" table=%s", intp.table.Self().NameTag()))
	}
	sb.WriteString(" )")
	return sb.String()
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		pterm.Println(intp.String())
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		cmd, err := intp.parseCommand(line)
		if err != nil {
			tracer().Errorf(err.Error())
			continue
		}
		err, quit := intp.execute(cmd)
		if err != nil {
			tracer().Errorf(err.Error())
			continue
		}
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

type Op struct {
	code   int
	arg    string
	format string
}

type Command struct {
	count int
	op    [32]Op
}

const NOOP = -1
const (
	// op-code QUIT will not have arguments
	QUIT int = iota
	// op-codes below may have arguments
	HELP
	CHAR
	LOAD
	DIR
	TABLE
	LOOKUP
	GLYPH
	NAMES
	BASE64
	URI
	SAVE
)

var opMap = map[string]int{
	"quit":     QUIT,
	"help":     HELP,
	"char":     CHAR,
	"generate": CHAR,
	"load":     LOAD,
	"dir":      DIR,
	"table":    TABLE,
	"lookup":   LOOKUP,
	"glyph":    GLYPH,
	"names":    NAMES,
	"base64":   BASE64,
	"uri":      URI,
	"save":     SAVE,
}

var opNames = []string{
	"quit",
	"help",
	"char",
	"load",
	"dir",
	"table",
	"lookup",
	"glyph",
	"names",
	"base64",
	"uri",
	"save",
}

var command = Command{}

func resetCommand() {
	command.count = 0
	for i := range command.op {
		command.op[i].code = NOOP
		command.op[i].arg = ""
		command.op[i].format = ""
	}
}

func (intp *Intp) parseCommand(line string) (*Command, error) {
	resetCommand()
	steps := strings.Fields(line)
	if len(steps) > len(command.op) {
		return nil, fmt.Errorf("too many commands in one line: %d", len(steps))
	}
	command.count = len(steps)
	for i, step := range steps {
		c := strings.SplitN(step, ":", 3) // e.g. "char:U+20AC" or "table:cmap:hex" or "uri:font/ttf"
		code, ok := opMap[strings.ToLower(c[0])]
		if !ok {
			code = HELP
		}
		command.op[i].code = code
		command.op[i].arg = ""
		if command.op[i].code == QUIT {
			return &command, nil
		}
		tracer().Debugf("parsed command: %v", c)
		command.op[i].arg = getOptArg(c, 1)
		command.op[i].format = getOptArg(c, 2)
		if command.op[i].arg == "" {
			tracer().Infof("%s", opNames[command.op[i].code])
		} else {
			tracer().Infof("%s: '%s'", opNames[command.op[i].code], command.op[i].arg)
		}
	}
	return &command, nil
}

var commandFn = map[int]func(*Intp, *Op) (error, bool){
	QUIT:   quitOp,
	HELP:   helpOp,
	CHAR:   charOp,
	LOAD:   loadOp,
	DIR:    dirOp,
	TABLE:  tableOp,
	LOOKUP: lookupOp,
	GLYPH:  glyphOp,
	NAMES:  namesOp,
	BASE64: base64Op,
	URI:    uriOp,
	SAVE:   saveOp,
}

func (intp *Intp) execute(cmd *Command) (err error, stop bool) {
	tracer().Debugf("cmd = %v", cmd.op[:cmd.count])
	for _, c := range cmd.op {
		if c.code == NOOP {
			break
		}
		f, ok := commandFn[c.code]
		if !ok {
			pterm.Error.Printf("unknown command code: %d\n", c.code)
			return nil, false
		}
		err, stop = f(intp, &c)
		if err != nil {
			pterm.Error.Println(err)
			return
		}
		if stop {
			return
		}
	}
	return
}

func quitOp(intp *Intp, op *Op) (error, bool) {
	pterm.Println("Goodbye!")
	return nil, true
}

func charOp(intp *Intp, op *Op) (error, bool) {
	if op.noArg() {
		return errors.New("usage: char:<character or U+XXXX>"), false
	}
	return intp.generateFont(op.arg), false
}

func loadOp(intp *Intp, op *Op) (error, bool) {
	if op.noArg() {
		return errors.New("usage: load:<font file>"), false
	}
	return intp.loadFont(op.arg), false
}

// --- Font Generation and Loading --------------------------------------

func (intp *Intp) generateFont(arg string) error {
	cp, err := otgen.ParseCodePoint(arg)
	if err != nil {
		return err
	}
	f, err := intp.gen.FontForCodePoint(cp)
	if err != nil {
		return err
	}
	tf, err := fontload.ParseFont(f.Binary)
	if err != nil {
		return err
	}
	tf.Source = cp.String()
	intp.setFont(tf)
	pterm.Printf("generated font for %s (%s), %d bytes\n", cp, characterName(rune(cp)), len(f.Binary))
	return nil
}

func (intp *Intp) loadFont(fontname string) error {
	tf, err := fontload.LoadFont(fontname)
	if err != nil {
		tracer().Errorf("cannot load font %s: %s", fontname, err)
		return err
	}
	intp.setFont(tf)
	pterm.Printf("font tables: %v\n", tf.OT.TableTags())
	return nil
}

func (intp *Intp) setFont(tf *fontload.TinyFont) {
	intp.font = tf
	intp.table = nil
	for _, w := range tf.OT.Warnings() {
		pterm.Warning.Println(w.String())
	}
	for _, e := range tf.OT.Errors() {
		pterm.Error.Println(e.Error())
	}
	tracer().Infof("font %s has %d tables", tf.Source, len(tf.OT.TableTags()))
}

// ----------------------------------------------------------------------

var ERR_NO_FONT = errors.New("no font set; use char:<c> or load:<file>")
var ERR_NO_TABLE = errors.New("no table set")

func (intp *Intp) checkFont() error {
	if intp.font == nil || intp.font.OT == nil {
		return ERR_NO_FONT
	}
	return nil
}

func (intp *Intp) checkTable() error {
	if err := intp.checkFont(); err != nil {
		return err
	}
	if intp.table == nil {
		return ERR_NO_TABLE
	}
	return nil
}

func getOptArg(s []string, inx int) string {
	if len(s) > inx {
		return s[inx]
	}
	return ""
}

func (op *Op) noArg() bool {
	return op.arg == ""
}

func (op *Op) hasArg() (string, bool) {
	if op.arg == "" {
		return "", false
	}
	return op.arg, true
}
