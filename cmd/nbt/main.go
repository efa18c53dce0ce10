// nbt - NBT codec CLI tool
//
// Usage:
//
//	nbt diag [--pretty] [file]                  Decode a document and print SNBT
//	nbt json [--pretty] [file]                  Decode a document and print JSON
//	nbt convert --compression C in [out]        Rewrite with a different container
//	nbt version                                 Print version info
//
// Input files may be raw, gzip, or zlib; the container is sniffed. If no
// file is given, reads from stdin.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/tagforge/nbt/nbt"
)

const version = "0.2.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "diag":
		cmdDiag(os.Args[2:])
	case "json":
		cmdJSON(os.Args[2:])
	case "convert":
		cmdConvert(os.Args[2:])
	case "version":
		fmt.Printf("nbt %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "nbt: unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func cmdDiag(args []string) {
	flags := pflag.NewFlagSet("diag", pflag.ExitOnError)
	pretty := flags.Bool("pretty", false, "indent nested tags")
	indent := flags.String("indent", "  ", "indent string for --pretty")
	flags.Parse(args)

	doc := readDocument(flags.Args())
	out := nbt.EmitWithOptions(doc.Root, nbt.EmitOptions{
		Pretty:   *pretty,
		Indent:   *indent,
		SortKeys: true,
	})
	if doc.Name != "" {
		fmt.Printf("%q: ", doc.Name)
	}
	fmt.Println(out)
}

func cmdJSON(args []string) {
	flags := pflag.NewFlagSet("json", pflag.ExitOnError)
	pretty := flags.Bool("pretty", false, "indent JSON output")
	flags.Parse(args)

	doc := readDocument(flags.Args())
	var out []byte
	var err error
	if *pretty {
		out, err = nbt.ToJSONIndent(doc.Root, "  ")
	} else {
		out, err = nbt.ToJSON(doc.Root)
	}
	if err != nil {
		fatal("render JSON: %v", err)
	}
	fmt.Println(string(out))
}

func cmdConvert(args []string) {
	flags := pflag.NewFlagSet("convert", pflag.ExitOnError)
	compName := flags.StringP("compression", "c", "gzip", "output container: none, gzip, zlib")
	flags.Parse(args)

	comp, ok := nbt.ParseCompression(*compName)
	if !ok {
		fatal("unknown compression: %s", *compName)
	}

	rest := flags.Args()
	if len(rest) < 1 {
		fatal("convert: missing input file")
	}
	doc, err := nbt.ReadFile(rest[0])
	if err != nil {
		fatal("%v", err)
	}

	if len(rest) >= 2 {
		if err := nbt.WriteFile(rest[1], doc, comp); err != nil {
			fatal("%v", err)
		}
		return
	}
	if err := nbt.Write(os.Stdout, doc, comp); err != nil {
		fatal("%v", err)
	}
}

// readDocument decodes the file named by the first argument, or stdin when
// no argument (or "-") is given.
func readDocument(args []string) *nbt.Document {
	var input io.Reader = os.Stdin
	if len(args) > 0 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			fatal("open file: %v", err)
		}
		defer f.Close()
		input = f
	}

	doc, err := nbt.Read(input)
	if err != nil {
		fatal("%v", err)
	}
	return doc
}

func printUsage() {
	fmt.Fprint(os.Stderr, `nbt - NBT codec CLI tool

Usage:
  nbt diag [--pretty] [file]             Decode a document and print SNBT
  nbt json [--pretty] [file]             Decode a document and print JSON
  nbt convert -c COMP in [out]           Rewrite with a different container
  nbt version                            Print version info

Options:
  --pretty             Indent nested output
  --indent STR         Indent string for diag --pretty (default two spaces)
  -c, --compression C  Output container for convert: none, gzip, zlib

If no file is given, input is read from stdin. Compressed input (gzip or
zlib) is detected automatically.
`)
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "nbt: "+format+"\n", args...)
	os.Exit(1)
}
