// Package fuzztests houses Go fuzz harnesses for the lexer and the cursor
// combinators. They check that arbitrary input never panics and that every
// token list and every combinator result still tiles its input.
//
// Назначение: прогонять произвольные байты через lexer.New, Span.Split,
// parse.Cursor и driver.Annotate и сверять инварианты через testkit.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/source, internal/lexer, internal/parse,
// internal/driver, internal/intlit, internal/testkit.

package fuzztests
