// Command lookup runs one dictionary operation and prints the result as JSON.
//
// Usage:
//
//	lookup [-cedict path [-hsk path]] -op <operation> <text...>
//
// Operations: classify, simplify, traditionalize, script, segment, query,
// english, pinyin, chinese. Without -cedict the bundled dictionary is used.
//
// Exit codes: 0 = success, 1 = error, 2 = usage.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/heartmarshall/zhdict/internal/dataset"
	"github.com/heartmarshall/zhdict/internal/domain"
	"github.com/heartmarshall/zhdict/internal/lexicon"
)

var errUsage = errors.New("usage")

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, errUsage) {
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "lookup: %v\n", err)
		os.Exit(1)
	}
}

type classifyOutput struct {
	Text           string `json:"text"`
	Classification string `json:"classification"`
}

type convertOutput struct {
	Text   string `json:"text"`
	Result string `json:"result"`
}

type scriptOutput struct {
	Text          string `json:"text"`
	IsSimplified  bool   `json:"is_simplified"`
	IsTraditional bool   `json:"is_traditional"`
}

type segmentOutput struct {
	Text     string   `json:"text"`
	Segments []string `json:"segments"`
}

type queryOutput struct {
	Query          string             `json:"query"`
	Classification string             `json:"classification"`
	Entries        []domain.WordEntry `json:"entries"`
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("lookup", flag.ContinueOnError)
	fs.SetOutput(stderr)
	op := fs.String("op", "query", "operation: classify|simplify|traditionalize|script|segment|query|english|pinyin|chinese")
	cedictPath := fs.String("cedict", "", "CC-CEDICT file (default: bundled dictionary)")
	hskPath := fs.String("hsk", "", "HSK list, used with -cedict")
	noFallback := fs.Bool("no-english-fallback", false, "do not append English matches to pinyin queries")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	text := strings.Join(fs.Args(), " ")
	if text == "" {
		fs.Usage()
		return errUsage
	}

	var src lexicon.Source = dataset.Embedded{}
	if *cedictPath != "" {
		src = dataset.File{DictPath: *cedictPath, HSKPath: *hskPath}
	}

	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()
	if err := lexicon.Initialize(ctx, src, lexicon.Options{PinyinFallbackEnglish: !*noFallback}); err != nil {
		return err
	}

	out, err := apply(*op, text)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(stdout)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// apply runs op against the process-wide engine.
func apply(op, text string) (any, error) {
	switch op {
	case "classify":
		return classifyOutput{Text: text, Classification: lexicon.Classify(text).String()}, nil
	case "simplify":
		return convertOutput{Text: text, Result: lexicon.ConvertToSimplified(text)}, nil
	case "traditionalize":
		return convertOutput{Text: text, Result: lexicon.ConvertToTraditional(text)}, nil
	case "script":
		return scriptOutput{
			Text:          text,
			IsSimplified:  lexicon.IsSimplified(text),
			IsTraditional: lexicon.IsTraditional(text),
		}, nil
	case "segment":
		return segmentOutput{Text: text, Segments: lexicon.Segment(text)}, nil
	case "query":
		r := lexicon.Query(text)
		return queryOutput{Query: text, Classification: r.Classification.String(), Entries: r.Entries}, nil
	case "english":
		return queryOutput{Query: text, Classification: domain.ClassificationEnglish.String(), Entries: lexicon.QueryByEnglish(text)}, nil
	case "pinyin":
		return queryOutput{Query: text, Classification: domain.ClassificationPinyin.String(), Entries: lexicon.QueryByPinyin(text)}, nil
	case "chinese":
		return queryOutput{Query: text, Classification: domain.ClassificationChinese.String(), Entries: lexicon.QueryByChinese(text)}, nil
	default:
		return nil, fmt.Errorf("unknown operation %q", op)
	}
}
