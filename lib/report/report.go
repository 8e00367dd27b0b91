// Package report renders an engine's declarations as a markdown plan.
package report

import (
	"embed"
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/fbiville/markdown-table-formatter/pkg/markdown"
	"github.com/samber/lo"

	"github.com/trufnetwork/tznode-dns/lib/deferred"
	"github.com/trufnetwork/tznode-dns/lib/provision"
)

// Unknown is shown for values that resolve only once the plan is applied.
const Unknown = "(known after apply)"

//go:embed templates/heading.tmpl
var tplFS embed.FS

var heading = template.Must(template.New("heading.tmpl").
	Funcs(sprig.TxtFuncMap()).
	ParseFS(tplFS, "templates/heading.tmpl"))

type headingData struct {
	Title   string
	Count   int
	Pending int
	Failed  int
}

type cell struct {
	text    string
	pending bool
	failed  bool
}

func peek[T any](o *deferred.Output[T], format func(T) string) cell {
	if o == nil {
		return cell{text: Unknown, pending: true}
	}
	v, known, err := o.Peek()
	switch {
	case !known:
		return cell{text: Unknown, pending: true}
	case err != nil:
		return cell{text: "error: " + err.Error(), failed: true}
	default:
		return cell{text: format(v)}
	}
}

func identity(s string) string { return s }

func row(d provision.Declaration) ([]string, cell) {
	switch d.Kind {
	case provision.KindRecord:
		args := d.Record.Args
		target := strings.Join(args.Records, ", ")
		if len(args.Aliases) > 0 {
			target = strings.Join(lo.Map(args.Aliases, func(a provision.Alias, _ int) string {
				return fmt.Sprintf("alias %s (%s)", a.Name, a.ZoneID)
			}), ", ")
		}
		fqdn := peek(d.Record.FQDN, identity)
		return []string{string(d.Kind), d.Name, args.Type, target, fqdn.text}, fqdn
	case provision.KindCertificateValidation:
		arn := peek(d.Validation.Args.CertificateArn, identity)
		fqdns := peek(d.Validation.Args.ValidationRecordFqdns, func(v []string) string { return strings.Join(v, ", ") })
		issued := peek(d.Validation.CertificateArn, identity)
		return []string{string(d.Kind), d.Name, "ACM", arn.text, fqdns.text}, issued
	default:
		return []string{string(d.Kind), d.Name, "", "", ""}, cell{}
	}
}

// Render writes a heading followed by one table row per declaration. The
// status counts in the heading follow each declaration's own output: a record's
// FQDN, a validation's issued certificate ARN.
func Render(w io.Writer, title string, decls []provision.Declaration) error {
	data := headingData{Title: title, Count: len(decls)}
	rows := make([][]string, 0, len(decls))
	for _, d := range decls {
		r, status := row(d)
		if status.pending {
			data.Pending++
		}
		if status.failed {
			data.Failed++
		}
		rows = append(rows, r)
	}

	if err := heading.Execute(w, data); err != nil {
		return fmt.Errorf("executing template %q: %w", heading.Name(), err)
	}
	if len(rows) == 0 {
		return nil
	}

	table, err := markdown.NewTableFormatterBuilder().
		WithPrettyPrint().
		Build("kind", "name", "type", "target", "fqdn").
		Format(rows)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, table)
	return err
}
