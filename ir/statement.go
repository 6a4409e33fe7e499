package ir

import "fmt"

// Statement represents a program-level construct. Statement order is
// significant: declarations precede uses and side effects run in order.
type Statement interface {
	statement()
}

// Block represents a sequence of statements executed in order.
type Block []Statement

// StorageQualifier is the storage qualifier of a declaration.
type StorageQualifier uint8

const (
	QualifierNone StorageQualifier = iota
	QualifierConst
	QualifierAttribute
	QualifierVarying
	QualifierUniform
)

// String returns the GLSL keyword, or "" for QualifierNone.
func (q StorageQualifier) String() string {
	switch q {
	case QualifierConst:
		return "const"
	case QualifierAttribute:
		return "attribute"
	case QualifierVarying:
		return "varying"
	case QualifierUniform:
		return "uniform"
	default:
		return ""
	}
}

// IsInterface reports whether the qualifier declares a shader interface
// variable (attribute, varying or uniform), which may not be initialized.
func (q StorageQualifier) IsInterface() bool {
	return q == QualifierAttribute || q == QualifierVarying || q == QualifierUniform
}

// StmtDeclare declares a variable.
type StmtDeclare struct {
	Name        string
	Type        Type
	Qualifier   StorageQualifier
	Invariant   bool
	Initializer Expression // nil for none
}

func (StmtDeclare) statement() {}

// AssignOperator is the operator of an assignment statement.
type AssignOperator uint8

const (
	AssignSet AssignOperator = iota
	AssignAdd
	AssignSubtract
	AssignMultiply
	AssignDivide
	AssignModulo
	AssignIncrement
	AssignDecrement
)

var assignTokens = [...]string{
	AssignSet:       "=",
	AssignAdd:       "+=",
	AssignSubtract:  "-=",
	AssignMultiply:  "*=",
	AssignDivide:    "/=",
	AssignModulo:    "%=",
	AssignIncrement: "++",
	AssignDecrement: "--",
}

// String returns the GLSL token of the operator.
func (op AssignOperator) String() string {
	if int(op) < len(assignTokens) {
		return assignTokens[op]
	}
	return fmt.Sprintf("AssignOperator(%d)", uint8(op))
}

// ParseAssignOperator maps a GLSL token to its operator.
func ParseAssignOperator(token string) (AssignOperator, bool) {
	for op, tok := range assignTokens {
		if tok == token {
			return AssignOperator(op), true
		}
	}
	return 0, false
}

// HasValue reports whether the operator takes a right-hand side.
func (op AssignOperator) HasValue() bool {
	return op != AssignIncrement && op != AssignDecrement
}

// StmtAssign assigns to a named variable. Value is nil for ++ and --.
type StmtAssign struct {
	Name  string
	Op    AssignOperator
	Value Expression
}

func (StmtAssign) statement() {}

// ParameterDirection is the direction qualifier of a function parameter.
type ParameterDirection uint8

const (
	DirectionNone ParameterDirection = iota
	DirectionIn
	DirectionOut
	DirectionInOut
)

// String returns the GLSL keyword, or "" for DirectionNone.
func (d ParameterDirection) String() string {
	switch d {
	case DirectionIn:
		return "in"
	case DirectionOut:
		return "out"
	case DirectionInOut:
		return "inout"
	default:
		return ""
	}
}

// FunctionParameter is a parameter of a function declaration.
type FunctionParameter struct {
	Name      string
	Type      Type
	Direction ParameterDirection
}

// StmtFunction declares a function with a body.
type StmtFunction struct {
	Name       string
	Parameters []FunctionParameter
	Result     Type
	Body       Block
}

func (StmtFunction) statement() {}

// StmtPrecision sets the default precision for a type. A nil Type means float.
type StmtPrecision struct {
	Precision Precision
	Type      Type
}

func (StmtPrecision) statement() {}

// StmtInvariant marks an already declared varying as invariant.
type StmtInvariant struct {
	Name string
}

func (StmtInvariant) statement() {}

// StmtBlock is a nested brace-delimited scope.
type StmtBlock struct {
	Body Block
}

func (StmtBlock) statement() {}

// StmtIfdef is an #ifdef/#else/#endif preprocessor conditional.
// The #else branch is written only when Reject is non-nil.
type StmtIfdef struct {
	Identifier string
	Accept     Block
	Reject     Block
}

func (StmtIfdef) statement() {}

// StructMember is a member of a struct declaration.
type StructMember struct {
	Name string
	Type Type
}

// StmtStruct declares a struct type.
type StmtStruct struct {
	Name    string
	Members []StructMember
}

func (StmtStruct) statement() {}

// ControlKind is the kind of a jump statement.
type ControlKind uint8

const (
	ControlReturn ControlKind = iota
	ControlBreak
	ControlContinue
	ControlDiscard
)

// String returns the GLSL keyword.
func (k ControlKind) String() string {
	switch k {
	case ControlReturn:
		return "return"
	case ControlBreak:
		return "break"
	case ControlContinue:
		return "continue"
	case ControlDiscard:
		return "discard"
	default:
		return fmt.Sprintf("ControlKind(%d)", uint8(k))
	}
}

// StmtControl is a jump statement. Only return may carry a Value.
type StmtControl struct {
	Kind  ControlKind
	Value Expression
}

func (StmtControl) statement() {}

// StmtIf conditionally executes one of two blocks.
// The else branch is written only when Reject is non-nil.
type StmtIf struct {
	Condition Expression // Must be a bool expression
	Accept    Block
	Reject    Block
}

func (StmtIf) statement() {}

// StmtFor is a for loop.
type StmtFor struct {
	Init      StmtDeclare
	Condition Expression
	Increment StmtAssign
	Body      Block
}

func (StmtFor) statement() {}

// StmtWhile is a while loop, or a do-while loop when DoWhile is set.
type StmtWhile struct {
	Condition Expression
	Body      Block
	DoWhile   bool
}

func (StmtWhile) statement() {}
