package output

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"addizionali/internal/model"
)

// TSOptions names the declarations of the generated module.
type TSOptions struct {
	ConstName        string
	DefaultConstName string
	// DefaultRate is exported as DefaultConstName when positive.
	DefaultRate float64
	TypeName    string
	// TypeImport is the module the type is imported from. When empty the
	// type is declared inline.
	TypeImport string
	// Source is mentioned in the header comment.
	Source string
}

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// EncodeTS writes ds as a TypeScript module, one entry per line, sorted by key.
func EncodeTS(w io.Writer, ds model.Dataset, opts TSOptions) error {
	bw := bufio.NewWriter(w)

	if opts.Source != "" {
		fmt.Fprintf(bw, "// Code generated by addizionali from %s; DO NOT EDIT.\n\n", opts.Source)
	} else {
		bw.WriteString("// Code generated by addizionali; DO NOT EDIT.\n\n")
	}

	if opts.TypeImport != "" {
		fmt.Fprintf(bw, "import { %s } from %s;\n\n", opts.TypeName, quote(opts.TypeImport))
	} else {
		writeInlineType(bw, opts.TypeName)
	}

	if opts.DefaultRate > 0 {
		fmt.Fprintf(bw, "export const %s = %s;\n\n", opts.DefaultConstName, formatNumber(opts.DefaultRate))
	}

	fmt.Fprintf(bw, "export const %s: Record<string, %s> = {\n", opts.ConstName, opts.TypeName)
	for _, key := range ds.Keys() {
		bw.WriteString("  ")
		bw.WriteString(formatKey(key))
		bw.WriteString(": ")
		bw.WriteString(formatEntry(ds[key]))
		bw.WriteString(",\n")
	}
	bw.WriteString("};\n")

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write ts: %w", err)
	}
	return nil
}

func writeInlineType(bw *bufio.Writer, name string) {
	fmt.Fprintf(bw, "export interface %s {\n", name)
	bw.WriteString("  n: string;\n")
	bw.WriteString("  pr?: string;\n")
	bw.WriteString("  r?: string;\n")
	bw.WriteString("  a?: number;\n")
	bw.WriteString("  s?: { l: number; a: number }[];\n")
	bw.WriteString("  e?: number;\n")
	bw.WriteString("}\n\n")
}

func formatEntry(e model.Entry) string {
	fields := make([]string, 0, 6)
	fields = append(fields, "n: "+quote(e.Name))
	if e.Province != "" {
		fields = append(fields, "pr: "+quote(e.Province))
	}
	if e.Region != "" {
		fields = append(fields, "r: "+quote(e.Region))
	}
	if e.IsProgressive() {
		brackets := make([]string, len(e.Brackets))
		for i, b := range e.Brackets {
			brackets[i] = fmt.Sprintf("{ l: %s, a: %s }", formatLimit(b.Limit), formatNumber(b.Rate))
		}
		fields = append(fields, "s: ["+strings.Join(brackets, ", ")+"]")
	} else {
		fields = append(fields, "a: "+formatNumber(e.Rate))
	}
	if e.HasExemption() {
		fields = append(fields, "e: "+formatNumber(e.Exemption))
	}
	return "{ " + strings.Join(fields, ", ") + " }"
}

func formatKey(key string) string {
	if identifier.MatchString(key) {
		return key
	}
	return quote(key)
}

func formatLimit(limit float64) string {
	if math.IsInf(limit, 1) {
		return "Infinity"
	}
	return formatNumber(limit)
}

// formatNumber groups thousands with '_' for values above 1000.
func formatNumber(v float64) string {
	if v > 1000 {
		return strings.ReplaceAll(humanize.Commaf(v), ",", "_")
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

var quoteReplacer = strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`)

func quote(s string) string {
	return "'" + quoteReplacer.Replace(s) + "'"
}
