// Package formatter reformats T-SQL source text. Formatting is a fixed
// pipeline of passes over one shared token slice: clause tracking, subquery
// depth, spacing, line structure, token normalization, comment placement and
// finally rendering. Each pass owns the annotation fields it writes; see
// fmtcommon.Token for the ownership table.
package formatter

import (
	"fmt"
	"strings"

	tsqlfmt "github.com/mikevskater/tsqlfmt"
	"github.com/mikevskater/tsqlfmt/formatter/fmtcommon"
	"github.com/mikevskater/tsqlfmt/formatter/formatstep1"
	"github.com/mikevskater/tsqlfmt/formatter/formatstep2"
	"github.com/mikevskater/tsqlfmt/formatter/formatstep3"
	"github.com/mikevskater/tsqlfmt/formatter/formatstep4"
	"github.com/mikevskater/tsqlfmt/formatter/formatstep5"
	"github.com/mikevskater/tsqlfmt/formatter/formatstep6"
	"github.com/mikevskater/tsqlfmt/formatter/formatstep7"
	"github.com/mikevskater/tsqlfmt/tokenizer"
)

// Format reformats sql according to cfg. A nil cfg formats with the
// defaults. Lex errors degrade to best-effort formatting of the tokens that
// were recovered; the input comes back unchanged with an error only when
// nothing usable was tokenized, so a format-on-save call never loses source
// it could not read.
func Format(sql string, cfg *tsqlfmt.Config) (string, error) {
	if cfg == nil {
		cfg = tsqlfmt.DefaultConfig()
	}

	if err := cfg.Validate(); err != nil {
		return sql, err
	}

	if strings.TrimSpace(sql) == "" {
		return sql, tsqlfmt.ErrEmptyInput
	}

	tok := tokenizer.NewSqlTokenizer(sql, tokenizer.TokenizerOptions{SkipWhitespace: true})

	raw, lexErr := tok.AllTokens()
	if len(raw) == 0 {
		if lexErr != nil {
			return sql, fmt.Errorf("tokenize: %w", lexErr)
		}

		return sql, tsqlfmt.ErrEmptyInput
	}

	tokens := fmtcommon.Wrap(raw)

	formatstep1.Execute(tokens, cfg)
	formatstep2.Execute(tokens, cfg)
	formatstep3.Execute(tokens, cfg)
	formatstep4.Execute(tokens, cfg)
	formatstep5.Execute(tokens, cfg)
	formatstep6.Execute(tokens, cfg)

	return formatstep7.Execute(tokens, cfg), nil
}
