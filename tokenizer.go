package main

import (
	"fmt"
	"os"
	"strings"

	tiktoken "github.com/pkoukk/tiktoken-go"
	hf "github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/pretrained"
)

// Tokenizer counts tokens in decoded file content. Implementations may hold
// resources, hence Close.
type Tokenizer interface {
	CountTokens(text string) int
	Close()
}

const (
	defaultTiktokenModel = "gpt-4o"
	defaultHFModel       = "gpt2"
)

type tiktokenCounter struct {
	ttk *tiktoken.Tiktoken
}

func (c *tiktokenCounter) CountTokens(text string) int {
	if c.ttk == nil {
		return 0
	}
	return len(c.ttk.EncodeOrdinary(text))
}

func (c *tiktokenCounter) Close() {}

type hfCounter struct {
	htk *hf.Tokenizer
}

func (c *hfCounter) CountTokens(text string) int {
	if c.htk == nil {
		return 0
	}
	en, err := c.htk.EncodeSingle(text)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: tokenizer failed to encode text: %v\n", err)
		return 0
	}
	return len(en.Tokens)
}

func (c *hfCounter) Close() {}

// newTokenizer builds the tokenizer selected by the --tokenizer family of
// flags. Failure here is not fatal to a run; the caller downgrades to
// counting nothing.
func newTokenizer() (Tokenizer, error) {
	switch strings.ToLower(tokenizerType) {
	case "tiktoken":
		return loadTiktoken()
	case "huggingface":
		return loadHuggingFace()
	default:
		return nil, fmt.Errorf("unsupported tokenizer type: %s (use 'tiktoken' or 'huggingface')", tokenizerType)
	}
}

func loadTiktoken() (Tokenizer, error) {
	model := tokenizerModel
	if model == "" {
		model = defaultTiktokenModel
	}

	tke, err := tiktoken.EncodingForModel(model)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: tiktoken model %q not found, falling back to %q: %v\n", model, defaultTiktokenModel, err)
		tke, err = tiktoken.EncodingForModel(defaultTiktokenModel)
		if err != nil {
			return nil, fmt.Errorf("failed to get tiktoken encoding for default model %q: %w", defaultTiktokenModel, err)
		}
	}
	return &tiktokenCounter{ttk: tke}, nil
}

func loadHuggingFace() (Tokenizer, error) {
	if tokenizerFile != "" {
		ttk, err := pretrained.FromFile(tokenizerFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load tokenizer from file %s: %w", tokenizerFile, err)
		}
		return &hfCounter{htk: ttk}, nil
	}

	model := tokenizerModel
	if model == "" {
		model = defaultHFModel
	}
	fmt.Printf("Loading HuggingFace tokenizer for model: %s (this may download files)\n", model)

	// CachedPath downloads tokenizer.json from the hub on first use.
	configFilePath, err := hf.CachedPath(model, "tokenizer.json")
	if err != nil {
		return nil, fmt.Errorf("failed to get cache path for model %s: %w", model, err)
	}
	ttk, err := pretrained.FromFile(configFilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load pretrained tokenizer for model %s (from %s): %w", model, configFilePath, err)
	}
	return &hfCounter{htk: ttk}, nil
}
