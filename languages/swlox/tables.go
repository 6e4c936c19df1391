package swlox

import "github.com/npillmayer/tabula/lr"

// Tables of the swlox language. Indices of action entries are spaced by the
// number of actions they hold; the gaps are empty entries.

const (
	stateCount      = 32
	largeStateCount = 4
	tokenCount      = 21
)

const (
	symEnd = iota
	symSemi
	symLParen
	symRParen
	symPrint
	symEq
	symVar
	symDash
	symBang
	symPlus
	symStar
	symSlash
	symEqEq
	symBangEq
	symLt
	symLtEq
	symGt
	symGtEq
	symNumberLiteral
	symStringLiteral
	symVariable
	symSourceFile
	symDeclaration
	symStatement
	symExpressionStatement
	symExpression
	symGroupedExpression
	symBinaryExpression
	symPrintStatement
	symAssignmentStatement
	symUnaryExpression
	symPrimaryExpression
	symVariableDeclaration
	symUnaryOperator
	symBinaryOperator
	auxSourceFileRepeat1
	symbolCount
)

var parseTable = [largeStateCount][symbolCount]uint16{
	0: {
		symEnd:           1,
		symSemi:          1,
		symLParen:        1,
		symRParen:        1,
		symPrint:         1,
		symEq:            1,
		symVar:           1,
		symDash:          1,
		symBang:          1,
		symPlus:          1,
		symStar:          1,
		symSlash:         1,
		symEqEq:          1,
		symBangEq:        1,
		symLt:            1,
		symLtEq:          1,
		symGt:            1,
		symGtEq:          1,
		symNumberLiteral: 1,
		symStringLiteral: 1,
		symVariable:      1,
	},
	1: {
		symSourceFile:          30,
		symDeclaration:         2,
		symStatement:           24,
		symExpressionStatement: 23,
		symExpression:          12,
		symGroupedExpression:   13,
		symBinaryExpression:    13,
		symPrintStatement:      23,
		symAssignmentStatement: 23,
		symUnaryExpression:     13,
		symPrimaryExpression:   13,
		symVariableDeclaration: 24,
		symUnaryOperator:       14,
		auxSourceFileRepeat1:   2,
		symEnd:                 3,
		symLParen:              5,
		symPrint:               7,
		symVar:                 9,
		symDash:                11,
		symBang:                11,
		symNumberLiteral:       13,
		symStringLiteral:       13,
		symVariable:            15,
	},
	2: {
		symDeclaration:         3,
		symStatement:           24,
		symExpressionStatement: 23,
		symExpression:          12,
		symGroupedExpression:   13,
		symBinaryExpression:    13,
		symPrintStatement:      23,
		symAssignmentStatement: 23,
		symUnaryExpression:     13,
		symPrimaryExpression:   13,
		symVariableDeclaration: 24,
		symUnaryOperator:       14,
		auxSourceFileRepeat1:   3,
		symEnd:                 17,
		symLParen:              5,
		symPrint:               7,
		symVar:                 9,
		symDash:                11,
		symBang:                11,
		symNumberLiteral:       13,
		symStringLiteral:       13,
		symVariable:            15,
	},
	3: {
		symDeclaration:         3,
		symStatement:           24,
		symExpressionStatement: 23,
		symExpression:          12,
		symGroupedExpression:   13,
		symBinaryExpression:    13,
		symPrintStatement:      23,
		symAssignmentStatement: 23,
		symUnaryExpression:     13,
		symPrimaryExpression:   13,
		symVariableDeclaration: 24,
		symUnaryOperator:       14,
		auxSourceFileRepeat1:   3,
		symEnd:                 19,
		symLParen:              21,
		symPrint:               24,
		symVar:                 27,
		symDash:                30,
		symBang:                30,
		symNumberLiteral:       33,
		symStringLiteral:       33,
		symVariable:            36,
	},
}

var smallParseTable = []uint16{
	3, // state 4
	20, 1, symBinaryOperator,
	41, 2, symLt, symGt,
	39, 10, symSemi, symRParen, symDash, symPlus, symStar, symSlash, symEqEq, symBangEq, symLtEq, symGtEq,
	3, // state 5
	20, 1, symBinaryOperator,
	45, 2, symLt, symGt,
	43, 10, symSemi, symRParen, symDash, symPlus, symStar, symSlash, symEqEq, symBangEq, symLtEq, symGtEq,
	2, // state 6
	49, 2, symLt, symGt,
	47, 10, symSemi, symRParen, symDash, symPlus, symStar, symSlash, symEqEq, symBangEq, symLtEq, symGtEq,
	6, // state 7
	5, 1, symLParen,
	14, 1, symUnaryOperator,
	15, 1, symExpression,
	11, 2, symDash, symBang,
	13, 3, symNumberLiteral, symStringLiteral, symVariable,
	13, 4, symGroupedExpression, symBinaryExpression, symUnaryExpression, symPrimaryExpression,
	3, // state 8
	53, 1, symEq,
	55, 2, symLt, symGt,
	51, 9, symSemi, symDash, symPlus, symStar, symSlash, symEqEq, symBangEq, symLtEq, symGtEq,
	4, // state 9
	57, 1, symSemi,
	20, 1, symBinaryOperator,
	61, 2, symLt, symGt,
	59, 8, symDash, symPlus, symStar, symSlash, symEqEq, symBangEq, symLtEq, symGtEq,
	6, // state 10
	5, 1, symLParen,
	14, 1, symUnaryOperator,
	16, 1, symExpression,
	11, 2, symDash, symBang,
	13, 3, symNumberLiteral, symStringLiteral, symVariable,
	13, 4, symGroupedExpression, symBinaryExpression, symUnaryExpression, symPrimaryExpression,
	4, // state 11
	63, 1, symSemi,
	20, 1, symBinaryOperator,
	61, 2, symLt, symGt,
	59, 8, symDash, symPlus, symStar, symSlash, symEqEq, symBangEq, symLtEq, symGtEq,
	4, // state 12
	65, 1, symSemi,
	20, 1, symBinaryOperator,
	61, 2, symLt, symGt,
	59, 8, symDash, symPlus, symStar, symSlash, symEqEq, symBangEq, symLtEq, symGtEq,
	2, // state 13
	69, 2, symLt, symGt,
	67, 10, symSemi, symRParen, symDash, symPlus, symStar, symSlash, symEqEq, symBangEq, symLtEq, symGtEq,
	6, // state 14
	5, 1, symLParen,
	5, 1, symExpression,
	14, 1, symUnaryOperator,
	11, 2, symDash, symBang,
	13, 3, symNumberLiteral, symStringLiteral, symVariable,
	13, 4, symGroupedExpression, symBinaryExpression, symUnaryExpression, symPrimaryExpression,
	4, // state 15
	71, 1, symRParen,
	20, 1, symBinaryOperator,
	61, 2, symLt, symGt,
	59, 8, symDash, symPlus, symStar, symSlash, symEqEq, symBangEq, symLtEq, symGtEq,
	4, // state 16
	73, 1, symSemi,
	20, 1, symBinaryOperator,
	61, 2, symLt, symGt,
	59, 8, symDash, symPlus, symStar, symSlash, symEqEq, symBangEq, symLtEq, symGtEq,
	6, // state 17
	5, 1, symLParen,
	9, 1, symExpression,
	14, 1, symUnaryOperator,
	11, 2, symDash, symBang,
	13, 3, symNumberLiteral, symStringLiteral, symVariable,
	13, 4, symGroupedExpression, symBinaryExpression, symUnaryExpression, symPrimaryExpression,
	6, // state 18
	5, 1, symLParen,
	11, 1, symExpression,
	14, 1, symUnaryOperator,
	11, 2, symDash, symBang,
	13, 3, symNumberLiteral, symStringLiteral, symVariable,
	13, 4, symGroupedExpression, symBinaryExpression, symUnaryExpression, symPrimaryExpression,
	2, // state 19
	55, 2, symLt, symGt,
	51, 10, symSemi, symRParen, symDash, symPlus, symStar, symSlash, symEqEq, symBangEq, symLtEq, symGtEq,
	6, // state 20
	5, 1, symLParen,
	4, 1, symExpression,
	14, 1, symUnaryOperator,
	11, 2, symDash, symBang,
	13, 3, symNumberLiteral, symStringLiteral, symVariable,
	13, 4, symGroupedExpression, symBinaryExpression, symUnaryExpression, symPrimaryExpression,
	2, // state 21
	77, 3, symPrint, symVar, symVariable,
	75, 6, symEnd, symLParen, symDash, symBang, symNumberLiteral, symStringLiteral,
	2, // state 22
	81, 3, symPrint, symVar, symVariable,
	79, 6, symEnd, symLParen, symDash, symBang, symNumberLiteral, symStringLiteral,
	2, // state 23
	85, 3, symPrint, symVar, symVariable,
	83, 6, symEnd, symLParen, symDash, symBang, symNumberLiteral, symStringLiteral,
	2, // state 24
	89, 3, symPrint, symVar, symVariable,
	87, 6, symEnd, symLParen, symDash, symBang, symNumberLiteral, symStringLiteral,
	2, // state 25
	93, 3, symPrint, symVar, symVariable,
	91, 6, symEnd, symLParen, symDash, symBang, symNumberLiteral, symStringLiteral,
	2, // state 26
	97, 3, symPrint, symVar, symVariable,
	95, 6, symEnd, symLParen, symDash, symBang, symNumberLiteral, symStringLiteral,
	1, // state 27
	99, 6, symLParen, symDash, symBang, symNumberLiteral, symStringLiteral, symVariable,
	1, // state 28
	101, 6, symLParen, symDash, symBang, symNumberLiteral, symStringLiteral, symVariable,
	1, // state 29
	103, 1, symVariable,
	1, // state 30
	105, 1, symEnd,
	1, // state 31
	107, 1, symEq,
}

var smallParseTableMap = []uint32{
	0, 20, 40, 57, 82, 101, 122, 147, 168, 189,
	206, 231, 252, 273, 298, 323, 340, 365, 379, 393,
	407, 421, 435, 449, 458, 467, 471, 475,
}

var parseActions = []lr.ActionEntry{
	1:   entry(false, recovery()),
	3:   entry(true, reduce(symSourceFile, 0)),
	5:   entry(true, shift(7)),
	7:   entry(false, shift(10)),
	9:   entry(false, shift(29)),
	11:  entry(true, shift(28)),
	13:  entry(true, shift(19)),
	15:  entry(false, shift(8)),
	17:  entry(true, reduce(symSourceFile, 1)),
	19:  entry(true, reduce(auxSourceFileRepeat1, 2)),
	21:  entry(true, reduce(auxSourceFileRepeat1, 2), shiftRepeat(7)),
	24:  entry(false, reduce(auxSourceFileRepeat1, 2), shiftRepeat(10)),
	27:  entry(false, reduce(auxSourceFileRepeat1, 2), shiftRepeat(29)),
	30:  entry(true, reduce(auxSourceFileRepeat1, 2), shiftRepeat(28)),
	33:  entry(true, reduce(auxSourceFileRepeat1, 2), shiftRepeat(19)),
	36:  entry(false, reduce(auxSourceFileRepeat1, 2), shiftRepeat(8)),
	39:  entry(true, reduce(symBinaryExpression, 3)),
	41:  entry(false, reduce(symBinaryExpression, 3)),
	43:  entry(true, reduce(symUnaryExpression, 2)),
	45:  entry(false, reduce(symUnaryExpression, 2)),
	47:  entry(true, reduce(symGroupedExpression, 3)),
	49:  entry(false, reduce(symGroupedExpression, 3)),
	51:  entry(true, reduce(symPrimaryExpression, 1)),
	53:  entry(false, shift(18)),
	55:  entry(false, reduce(symPrimaryExpression, 1)),
	57:  entry(true, shift(26)),
	59:  entry(true, shift(27)),
	61:  entry(false, shift(27)),
	63:  entry(true, shift(25)),
	65:  entry(true, shift(21)),
	67:  entry(true, reduce(symExpression, 1)),
	69:  entry(false, reduce(symExpression, 1)),
	71:  entry(true, shift(6)),
	73:  entry(true, shift(22)),
	75:  entry(true, reduce(symExpressionStatement, 2)),
	77:  entry(false, reduce(symExpressionStatement, 2)),
	79:  entry(true, reduce(symPrintStatement, 3)),
	81:  entry(false, reduce(symPrintStatement, 3)),
	83:  entry(true, reduce(symStatement, 1)),
	85:  entry(false, reduce(symStatement, 1)),
	87:  entry(true, reduce(symDeclaration, 1)),
	89:  entry(false, reduce(symDeclaration, 1)),
	91:  entry(true, reduce(symAssignmentStatement, 4)),
	93:  entry(false, reduce(symAssignmentStatement, 4)),
	95:  entry(true, reduce(symVariableDeclaration, 5)),
	97:  entry(false, reduce(symVariableDeclaration, 5)),
	99:  entry(true, reduce(symBinaryOperator, 1)),
	101: entry(true, reduce(symUnaryOperator, 1)),
	103: entry(true, shift(31)),
	105: entry(true, accept()),
	107: entry(true, shift(17)),
}

var lexModes = [stateCount]uint16{
	0, 6, 6, 6, 2, 2, 2, 1,
	2, 2, 1, 2, 2, 2, 1, 2,
	2, 1, 1, 2, 1, 6, 6, 6,
	6, 6, 6, 1, 1, 2, 0, 0,
}
