/*
Copyright © 2025 The tolmach authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/perelab/tolmach/internal/detector"
	"github.com/perelab/tolmach/internal/glossary"
	"github.com/perelab/tolmach/internal/langname"
	"github.com/perelab/tolmach/internal/llm"
	"github.com/perelab/tolmach/internal/translator"
	"github.com/perelab/tolmach/internal/validator"
)

var (
	inputFile  string
	outputFile string
	sourceLang string
	targetLang string
	country    string

	provider string
	model    string
	apiKey   string
	baseURL  string

	maxTokens  int
	dbPath     string
	noGlossary bool
)

var translateCmd = &cobra.Command{
	Use:   "translate",
	Short: "Translate a document with the three-stage pipeline",
	Long: `Translate a document using a three-stage LLM pipeline: draft, critique,
and improved final translation. Documents over the chunk token budget are
split and translated chunk by chunk with full-document context.

Available providers:
  - openai      OpenAI chat completions (default; requires OPENAI_API_KEY)
  - openrouter  OpenRouter (requires OPENROUTER_API_KEY)
  - groq        Groq (requires GROQ_API_KEY)
  - anthropic   Anthropic Messages API (requires ANTHROPIC_API_KEY)
  - gemini      Google Gemini (requires GOOGLE_API_KEY)
  - ollama      Ollama LLM (self-hosted, no key)

Glossary terms stored for the language pair are pinned in the prompt so
recurring vocabulary translates consistently.

Example:
  tolmach translate -i book.txt -o book_uk.txt -t uk --country Ukraine`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if inputFile == outputFile {
			return fmt.Errorf("input file and output file cannot be the same")
		}

		raw, err := os.ReadFile(inputFile)
		if err != nil {
			return fmt.Errorf("failed to read input file: %w", err)
		}
		text := string(raw)

		ctx := context.Background()

		// Auto-detect source language when not specified
		if sourceLang == "auto" {
			code, ok := detector.New().DetectCode(text)
			if !ok {
				return fmt.Errorf("failed to detect source language, specify --source")
			}
			sourceLang = code
			fmt.Fprintf(os.Stderr, "Detected source language: %s\n", sourceLang)
		}

		// Glossary terms are supplementary; translation proceeds without them.
		var terms map[string]string
		if !noGlossary {
			db, gErr := glossary.New(viper.GetString("db"))
			if gErr != nil {
				fmt.Fprintf(os.Stderr, "Glossary unavailable: %v, continuing without it\n", gErr)
			} else {
				terms, gErr = db.Terms(ctx, sourceLang, targetLang)
				if gErr != nil {
					fmt.Fprintf(os.Stderr, "Glossary unavailable: %v, continuing without it\n", gErr)
					terms = nil
				} else if len(terms) > 0 {
					fmt.Fprintf(os.Stderr, "Loaded %d glossary terms for %s→%s\n", len(terms), sourceLang, targetLang)
				}
				db.Close()
			}
		}

		handle, err := llm.New(ctx, llm.Config{
			Provider: viper.GetString("provider"),
			Model:    viper.GetString("model"),
			APIKey:   viper.GetString("api_key"),
			BaseURL:  viper.GetString("base_url"),
		})
		if err != nil {
			return err
		}
		if c, ok := handle.(io.Closer); ok {
			defer c.Close()
		}

		tr, err := translator.New(handle, translator.Config{
			MaxTokensPerChunk: viper.GetInt("max_tokens"),
			Logf: func(format string, args ...any) {
				fmt.Fprintf(os.Stderr, format+"\n", args...)
			},
		})
		if err != nil {
			return err
		}

		result, err := tr.Translate(ctx, translator.Request{
			SourceLang: langname.Name(sourceLang),
			TargetLang: langname.Name(targetLang),
			Text:       text,
			Country:    country,
			Glossary:   terms,
		})
		if err != nil {
			return fmt.Errorf("translation failed: %w", err)
		}

		if ok, vErr := validator.New().Check(result, targetLang); !ok {
			fmt.Fprintf(os.Stderr, "Warning: output language check: %v\n", vErr)
		}

		if err := os.MkdirAll(filepath.Dir(outputFile), 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}

		if err := os.WriteFile(outputFile, []byte(result), 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}

		fmt.Printf("Successfully translated %s to %s\n", sourceLang, targetLang)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(translateCmd)

	translateCmd.Flags().StringVarP(&inputFile, "input", "i", "", "Input file to translate (required)")
	translateCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file for translation (required)")
	translateCmd.Flags().StringVarP(&sourceLang, "source", "s", "auto", "Source language code")
	translateCmd.Flags().StringVarP(&targetLang, "target", "t", "", "Target language code (required)")
	translateCmd.Flags().StringVar(&country, "country", "", "Country whose colloquial variant of the target language to match")

	translateCmd.Flags().StringVar(&provider, "provider", "openai", "Model provider (openai, openrouter, groq, anthropic, gemini, ollama)")
	translateCmd.Flags().StringVar(&model, "model", "", "Model name (provider default used if empty)")
	translateCmd.Flags().StringVar(&apiKey, "api-key", "", "API key (provider env var used if empty)")
	translateCmd.Flags().StringVar(&baseURL, "base-url", "", "Custom API base URL (OpenAI-compatible endpoints, Ollama host)")

	translateCmd.Flags().IntVar(&maxTokens, "max-tokens", translator.DefaultMaxTokensPerChunk, "Token budget per chunk")
	translateCmd.Flags().StringVar(&dbPath, "db", "./data/tolmach.db", "Database path for the glossary")
	translateCmd.Flags().BoolVar(&noGlossary, "no-glossary", false, "Skip glossary term injection")

	viper.BindPFlag("provider", translateCmd.Flags().Lookup("provider"))
	viper.BindPFlag("model", translateCmd.Flags().Lookup("model"))
	viper.BindPFlag("api_key", translateCmd.Flags().Lookup("api-key"))
	viper.BindPFlag("base_url", translateCmd.Flags().Lookup("base-url"))
	viper.BindPFlag("max_tokens", translateCmd.Flags().Lookup("max-tokens"))
	viper.BindPFlag("db", translateCmd.Flags().Lookup("db"))

	translateCmd.MarkFlagRequired("input")
	translateCmd.MarkFlagRequired("output")
	translateCmd.MarkFlagRequired("target")
}
