// Command gosoup parses an HTML document from a file or stdin and prints the
// elements matched by a CSS selector or an XPath expression.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/heathj/gosoup"
	"github.com/heathj/gosoup/parser"
	"github.com/heathj/gosoup/parser/dom"
	"github.com/heathj/gosoup/selector"
	"github.com/heathj/gosoup/stylesheet"
)

type options struct {
	css, xpath string
	first      bool
	text, html bool
	dump, tree bool
	styles     bool
	fragment   string
	verbose    bool
	trace      bool
}

func parseFlags(args []string, stderr io.Writer) (*options, []string, error) {
	var o options
	fs := flag.NewFlagSet("gosoup", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.css, "css", "", "CSS selector to match")
	fs.StringVar(&o.xpath, "xpath", "", "XPath expression to match")
	fs.BoolVar(&o.first, "first", false, "print only the first match")
	fs.BoolVar(&o.text, "text", false, "print the text content of matches")
	fs.BoolVar(&o.html, "html", false, "print the inner HTML of matches")
	fs.BoolVar(&o.dump, "dump", false, "print the html5lib tree dump")
	fs.BoolVar(&o.tree, "tree", false, "print an indented tree of the document or of the compiled selector")
	fs.BoolVar(&o.styles, "styles", false, "print the computed style of matches from embedded style sheets")
	fs.StringVar(&o.fragment, "fragment", "", "parse the input as the inner HTML of this context element")
	fs.BoolVar(&o.verbose, "v", false, "log parse errors")
	fs.BoolVar(&o.trace, "vv", false, "log tokenizer transitions")
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	if o.css != "" && o.xpath != "" {
		return nil, nil, errors.New("-css and -xpath are exclusive")
	}
	return &o, fs.Args(), nil
}

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Cause(err) != flag.ErrHelp {
			fmt.Fprintln(os.Stderr, "gosoup:", err)
		}
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	o, rest, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	logger := logrus.New()
	logger.SetOutput(stderr)
	logger.SetLevel(logrus.WarnLevel)
	switch {
	case o.trace:
		logger.SetLevel(logrus.TraceLevel)
	case o.verbose:
		logger.SetLevel(logrus.DebugLevel)
	}

	in := stdin
	if len(rest) > 0 {
		f, err := os.Open(rest[0])
		if err != nil {
			return errors.Wrap(err, "opening input")
		}
		defer f.Close()
		in = f
	}

	doc, top, err := load(in, o, logger)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(stdout)
	defer w.Flush()

	if o.dump {
		fmt.Fprintln(w, doc.Dump(dom.DocumentID))
	}
	if o.tree && o.css == "" {
		fmt.Fprintln(w, doc.Tree(dom.DocumentID))
	}
	if o.css == "" && o.xpath == "" {
		if !o.dump && !o.tree {
			for _, id := range top {
				fmt.Fprintln(w, doc.OuterHTML(id))
			}
		}
		return nil
	}

	root := doc.Node(dom.DocumentID)
	var matches []dom.Node
	if o.css != "" {
		sel, err := selector.Compile(o.css)
		if err != nil {
			return errors.Wrapf(err, "compiling %q", o.css)
		}
		if o.tree {
			fmt.Fprintln(w, sel.Tree())
		}
		matches = doc.Nodes(sel.Select(doc, dom.DocumentID))
	} else {
		matches, err = gosoup.XPath(root, o.xpath)
		if err != nil {
			return err
		}
	}
	if o.first && len(matches) > 1 {
		matches = matches[:1]
	}
	logger.WithField("matches", len(matches)).Debug("query done")

	var sheet *stylesheet.Sheet
	if o.styles {
		if sheet, err = stylesheet.Extract(doc, stylesheet.WithLogger(logger)); err != nil {
			return err
		}
	}
	for _, n := range matches {
		switch {
		case o.text:
			fmt.Fprintln(w, n.TextContent())
		case o.html:
			fmt.Fprintln(w, n.InnerHTML())
		default:
			fmt.Fprintln(w, n.OuterHTML())
		}
		if sheet != nil {
			printStyle(w, sheet.Computed(doc, n.ID()))
		}
	}
	return nil
}

func load(in io.Reader, o *options, logger logrus.FieldLogger) (*dom.Document, []dom.NodeID, error) {
	opts := []parser.Option{parser.WithLogger(logger)}
	if o.fragment == "" {
		doc, err := parser.Parse(in, opts...)
		if err != nil {
			return nil, nil, err
		}
		return doc, doc.Children(dom.DocumentID), nil
	}
	opts = append(opts, parser.WithContext(o.fragment))
	return parser.ParseFragment(in, opts...)
}

func printStyle(w io.Writer, props map[string]string) {
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var sb strings.Builder
	for _, k := range keys {
		sb.WriteString("  ")
		sb.WriteString(k)
		sb.WriteString(": ")
		sb.WriteString(props[k])
		sb.WriteString(";\n")
	}
	fmt.Fprint(w, sb.String())
}
