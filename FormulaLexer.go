package main

import (
	"fmt"
	"github.com/xuri/efp"
	"strings"
)

type TokenKind int

const (
	TokenRef TokenKind = iota
	TokenColon
	TokenOperator
	TokenNumber
	TokenString
	TokenBool
	TokenFuncName
	TokenLParen
	TokenRParen
	TokenSep
	// TokenName is an operand which is neither a literal nor a cell reference
	TokenName
)

type OperatorPosition int

const (
	OperatorInfix OperatorPosition = iota
	OperatorPrefix
	OperatorPostfix
)

type Token struct {
	Kind     TokenKind
	Text     string
	Position OperatorPosition
}

// FormulaLexer turns a formula body into a flat token stream in a single pass.
// Tokenization itself is done by efp (the excelize formula parser), ranges are split into REF COLON REF.
type FormulaLexer struct {
	canonicalizer *Canonicalizer
}

func NewFormulaLexer(canonicalizer *Canonicalizer) *FormulaLexer {
	return &FormulaLexer{canonicalizer: canonicalizer}
}

// Tokenize returns the tokens recognised so far together with the first error
func (l *FormulaLexer) Tokenize(formulaBody string) (tokens []Token, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("%w: tokenizer: %v", MalformedExpressionError, recovered)
		}
	}()

	canonical := strings.TrimSpace(l.canonicalizer.Canonicalize(formulaBody))
	if canonical == "" {
		return nil, fmt.Errorf("%w: empty formula", MalformedExpressionError)
	}

	parser := efp.ExcelParser()
	parsed := parser.Parse(canonical)

	tokens = make([]Token, 0, len(parsed))
	for _, item := range parsed {
		tokens, err = l.appendToken(tokens, item)
		if err != nil {
			return tokens, err
		}
	}

	return tokens, nil
}

func (l *FormulaLexer) appendToken(tokens []Token, item efp.Token) ([]Token, error) {
	switch item.TType {
	case efp.TokenTypeOperand:
		return l.appendOperand(tokens, item)

	case efp.TokenTypeFunction:
		if item.TSubType == efp.TokenSubTypeStart {
			return append(tokens, Token{Kind: TokenFuncName, Text: item.TValue}, Token{Kind: TokenLParen, Text: "("}), nil
		}
		return append(tokens, Token{Kind: TokenRParen, Text: ")"}), nil

	case efp.TokenTypeSubexpression:
		if item.TSubType == efp.TokenSubTypeStart {
			return append(tokens, Token{Kind: TokenLParen, Text: "("}), nil
		}
		return append(tokens, Token{Kind: TokenRParen, Text: ")"}), nil

	case efp.TokenTypeArgument:
		return append(tokens, Token{Kind: TokenSep, Text: ","}), nil

	case efp.TokenTypeOperatorInfix:
		if item.TSubType == efp.TokenSubTypeIntersection || item.TSubType == efp.TokenSubTypeUnion {
			return tokens, fmt.Errorf("%w: unexpected `%s`", MalformedExpressionError, item.TValue)
		}
		return append(tokens, Token{Kind: TokenOperator, Text: item.TValue, Position: OperatorInfix}), nil

	case efp.TokenTypeOperatorPrefix:
		return append(tokens, Token{Kind: TokenOperator, Text: item.TValue, Position: OperatorPrefix}), nil

	case efp.TokenTypeOperatorPostfix:
		return append(tokens, Token{Kind: TokenOperator, Text: item.TValue, Position: OperatorPostfix}), nil

	case efp.TokenTypeWhitespace:
		return tokens, nil
	}

	return tokens, fmt.Errorf("%w: unexpected `%s`", MalformedExpressionError, item.TValue)
}

func (l *FormulaLexer) appendOperand(tokens []Token, item efp.Token) ([]Token, error) {
	switch item.TSubType {
	case efp.TokenSubTypeNumber:
		return append(tokens, Token{Kind: TokenNumber, Text: item.TValue}), nil

	case efp.TokenSubTypeText:
		// efp drops the quotes and unescapes doubled ones
		return append(tokens, Token{Kind: TokenString, Text: item.TValue}), nil

	case efp.TokenSubTypeLogical:
		return append(tokens, Token{Kind: TokenBool, Text: item.TValue}), nil

	case efp.TokenSubTypeError:
		return tokens, fmt.Errorf("%w: error literal `%s`", MalformedExpressionError, item.TValue)
	}

	// everything else is a reference, a range or an unknown name; absolute markers are ignored
	parts := strings.Split(item.TValue, ":")
	for index, part := range parts {
		part = strings.ReplaceAll(part, "$", "")
		if index > 0 {
			tokens = append(tokens, Token{Kind: TokenColon, Text: ":"})
		}

		if IsReference(part) {
			tokens = append(tokens, Token{Kind: TokenRef, Text: part})
		} else if part != "" {
			tokens = append(tokens, Token{Kind: TokenName, Text: part})
		}
	}

	return tokens, nil
}
