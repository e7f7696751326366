package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"cdecl-stream/pkg/ast"
	"cdecl-stream/pkg/formatter"

	"gopkg.in/yaml.v2"
)

// itemRecord is the serialized form of an item
type itemRecord struct {
	File      string   `json:"file" yaml:"file"`
	Line      int      `json:"line" yaml:"line"`
	Kind      string   `json:"kind" yaml:"kind"`
	Parent    string   `json:"parent,omitempty" yaml:"parent,omitempty"`
	Name      string   `json:"name,omitempty" yaml:"name,omitempty"`
	Forward   bool     `json:"forward,omitempty" yaml:"forward,omitempty"`
	Storage   string   `json:"storage,omitempty" yaml:"storage,omitempty"`
	Inline    bool     `json:"inline,omitempty" yaml:"inline,omitempty"`
	TypeQual  string   `json:"typeQual,omitempty" yaml:"typeQual,omitempty"`
	TypeSpec  string   `json:"typeSpec,omitempty" yaml:"typeSpec,omitempty"`
	Abstract  string   `json:"abstract,omitempty" yaml:"abstract,omitempty"`
	Params    string   `json:"params,omitempty" yaml:"params,omitempty"`
	Size      string   `json:"size,omitempty" yaml:"size,omitempty"`
	Bitfield  bool     `json:"bitfield,omitempty" yaml:"bitfield,omitempty"`
	Anonymous bool     `json:"anonymous,omitempty" yaml:"anonymous,omitempty"`
	Init      string   `json:"init,omitempty" yaml:"init,omitempty"`
	Text      string   `json:"text,omitempty" yaml:"text,omitempty"`
	Members   []string `json:"members,omitempty" yaml:"members,omitempty"`
}

type fileRecord struct {
	Filename string       `json:"filename" yaml:"filename"`
	Items    []itemRecord `json:"items" yaml:"items"`
	Error    string       `json:"error,omitempty" yaml:"error,omitempty"`
}

func convertItem(it ast.Item) itemRecord {
	rec := itemRecord{
		File:    it.File.Filename,
		Line:    it.File.Line,
		Kind:    it.Kind.String(),
		Parent:  it.Parent,
		Name:    it.Name,
		Forward: it.IsForward(),
	}
	setType := func(vt ast.VarType) {
		rec.Storage = vt.Storage
		rec.TypeQual = vt.TypeQual
		rec.TypeSpec = vt.TypeSpec
		rec.Abstract = vt.Abstract
	}
	switch d := it.Data.(type) {
	case *ast.VarType:
		setType(*d)
	case *ast.Function:
		setType(d.ReturnType)
		if d.Storage != "" {
			rec.Storage = d.Storage
		}
		rec.Inline = d.Inline
		rec.Params = d.Params
		rec.Forward = d.IsForward
	case *ast.Field:
		setType(d.Type)
		rec.Size = d.Size
		rec.Bitfield = d.IsBitfield
		rec.Anonymous = d.IsAnonymous
	case *ast.Enumerator:
		rec.Init = d.Init
	case *ast.Statement:
		rec.Text = d.Text
	case *ast.Compound:
		for _, m := range d.Members {
			rec.Members = append(rec.Members, m.Name)
		}
	}
	return rec
}

func convertResults(results []fileResult) []fileRecord {
	records := make([]fileRecord, 0, len(results))
	for _, res := range results {
		rec := fileRecord{Filename: res.filename, Items: []itemRecord{}}
		for _, it := range res.items {
			rec.Items = append(rec.Items, convertItem(it))
		}
		if res.err != nil {
			rec.Error = res.err.Error()
		}
		records = append(records, rec)
	}
	return records
}

func outputJSON(w io.Writer, results []fileResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(map[string]interface{}{
		"files": convertResults(results),
	})
}

func outputYAML(w io.Writer, results []fileResult) error {
	data, err := yaml.Marshal(map[string]interface{}{
		"files": convertResults(results),
	})
	if err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	_, err = w.Write(data)
	return err
}

func outputHuman(w io.Writer, results []fileResult) error {
	f := formatter.New()
	for i, res := range results {
		if len(results) > 1 {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "Parsed file: %s\n", res.filename)
			fmt.Fprintf(w, "=====================================\n")
		}
		if _, err := io.WriteString(w, f.Human(res.items)); err != nil {
			return err
		}
		if res.err != nil {
			fmt.Fprintf(w, "error: %v\n", res.err)
		}
	}
	return nil
}
