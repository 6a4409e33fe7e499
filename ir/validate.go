package ir

import (
	"fmt"
)

// ValidationError represents a validation error.
type ValidationError struct {
	Message string
	// Optional context
	Function  string
	Statement int
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Function != "" {
		if e.Statement >= 0 {
			return fmt.Sprintf("in function %s, statement %d: %s", e.Function, e.Statement, e.Message)
		}
		return fmt.Sprintf("in function %s: %s", e.Function, e.Message)
	}
	if e.Statement >= 0 {
		return fmt.Sprintf("statement %d: %s", e.Statement, e.Message)
	}
	return e.Message
}

// Validator validates shaders.
type Validator struct {
	shader  *Shader
	errors  []ValidationError
	context validationContext
}

// validationContext holds current validation context.
type validationContext struct {
	function     *StmtFunction
	functionName string
	statement    int
	loopDepth    int
	env          *scopeEnv
	qualifiers   map[string]StorageQualifier
	readOnly     map[string]bool
	structs      map[string]bool
}

// Validate checks the shader for GLSL ES 1.00 semantic errors.
// Returns validation errors if any, or nil if the shader is valid.
func Validate(shader *Shader) ([]ValidationError, error) {
	if shader == nil {
		return nil, fmt.Errorf("shader is nil")
	}

	v := &Validator{
		shader: shader,
		errors: make([]ValidationError, 0),
	}

	v.ValidateShader()

	if len(v.errors) > 0 {
		return v.errors, nil
	}
	return nil, nil
}

// ValidateShader validates the complete shader.
func (v *Validator) ValidateShader() {
	v.context = validationContext{
		statement:  -1,
		env:        newScopeEnv(nil),
		qualifiers: make(map[string]StorageQualifier),
		readOnly:   make(map[string]bool),
		structs:    make(map[string]bool),
	}
	for _, b := range BuiltinVariables(v.shader.Stage) {
		v.context.env.define(b.Name, b.Type)
		if b.ReadOnly {
			v.context.readOnly[b.Name] = true
		}
	}

	if v.shader.Version != Version100 {
		v.addError(fmt.Sprintf("unsupported version %s", v.shader.Version))
	}

	hasMain := false
	for i, stmt := range v.shader.Statements {
		v.context.statement = i
		switch s := stmt.(type) {
		case StmtFunction:
			if s.Name == "main" {
				hasMain = true
			}
			v.validateFunction(s)
		case StmtDeclare:
			v.validateGlobalDeclaration(s)
		case StmtStruct:
			v.validateStruct(s)
		case StmtPrecision:
			v.validatePrecision(s)
		case StmtInvariant:
			v.validateInvariant(s)
		case StmtIfdef:
			v.validateGlobalBlock(s.Accept)
			v.validateGlobalBlock(s.Reject)
		default:
			v.addError(fmt.Sprintf("%T is not allowed at global scope", stmt))
		}
	}
	v.context.statement = -1

	if !hasMain {
		v.addError("shader has no main function")
	}
}

// validateGlobalBlock validates the branches of a global #ifdef. Both
// branches see the same global scope.
func (v *Validator) validateGlobalBlock(block Block) {
	for _, stmt := range block {
		switch s := stmt.(type) {
		case StmtFunction:
			v.validateFunction(s)
		case StmtDeclare:
			v.validateGlobalDeclaration(s)
		case StmtStruct:
			v.validateStruct(s)
		case StmtPrecision:
			v.validatePrecision(s)
		case StmtInvariant:
			v.validateInvariant(s)
		case StmtIfdef:
			v.validateGlobalBlock(s.Accept)
			v.validateGlobalBlock(s.Reject)
		default:
			v.addError(fmt.Sprintf("%T is not allowed at global scope", stmt))
		}
	}
}

func (v *Validator) validateGlobalDeclaration(decl StmtDeclare) {
	v.validateDeclaration(decl)

	switch decl.Qualifier {
	case QualifierAttribute:
		if v.shader.Stage != StageVertex {
			v.addError(fmt.Sprintf("attribute %q declared outside a vertex shader", decl.Name))
		}
		if !IsFloating(decl.Type) {
			v.addError(fmt.Sprintf("attribute %q must be float, vecN or matN, got %s", decl.Name, TypeName(decl.Type)))
		}
	case QualifierVarying:
		base := decl.Type
		if arr, ok := base.(ArrayType); ok {
			base = arr.Base
		}
		if !IsFloating(base) {
			v.addError(fmt.Sprintf("varying %q must be float, vecN or matN, got %s", decl.Name, TypeName(decl.Type)))
		}
	}

	if decl.Qualifier == QualifierAttribute || decl.Qualifier == QualifierUniform ||
		(decl.Qualifier == QualifierVarying && v.shader.Stage == StageFragment) {
		v.context.readOnly[decl.Name] = true
	}
	v.context.qualifiers[decl.Name] = decl.Qualifier
}

// validateDeclaration checks rules shared by global and local declarations
// and brings the name into scope.
func (v *Validator) validateDeclaration(decl StmtDeclare) {
	if decl.Name == "" {
		v.addError("declaration has empty name")
	}
	v.validateType(decl.Type, "variable "+decl.Name)

	switch decl.Type.(type) {
	case VoidType:
		v.addError(fmt.Sprintf("variable %q cannot have type void", decl.Name))
	case SamplerType:
		if decl.Qualifier != QualifierUniform {
			v.addError(fmt.Sprintf("sampler %q must be a uniform", decl.Name))
		}
	}

	_, isArray := decl.Type.(ArrayType)
	switch {
	case decl.Qualifier.IsInterface() && decl.Initializer != nil:
		v.addError(fmt.Sprintf("%s %q cannot have an initializer", decl.Qualifier, decl.Name))
	case isArray && decl.Initializer != nil:
		v.addError(fmt.Sprintf("array %q cannot have an initializer", decl.Name))
	case decl.Qualifier == QualifierConst && decl.Initializer == nil:
		v.addError(fmt.Sprintf("const %q requires an initializer", decl.Name))
	case decl.Qualifier == QualifierNone && !isArray && decl.Initializer == nil:
		v.addError(fmt.Sprintf("variable %q requires an initializer", decl.Name))
	}

	if decl.Invariant && decl.Qualifier != QualifierVarying {
		v.addError(fmt.Sprintf("only varyings can be invariant, %q is not", decl.Name))
	}

	if decl.Initializer != nil {
		if t, ok := v.resolve(decl.Initializer, "initializer of "+decl.Name); ok && decl.Type != nil {
			if !SameShape(t, decl.Type) {
				v.addError(fmt.Sprintf("cannot initialize %s %q with %s", TypeName(decl.Type), decl.Name, TypeName(t)))
			}
		}
	}

	v.context.env.define(decl.Name, decl.Type)
	if decl.Qualifier == QualifierConst {
		v.context.readOnly[decl.Name] = true
	}
}

// validateType checks that t is well formed and that struct references
// name a declared struct.
func (v *Validator) validateType(t Type, owner string) {
	switch t := t.(type) {
	case nil:
		v.addError(fmt.Sprintf("%s has no type", owner))
	case VectorType:
		v.validateSize(t.Size, owner)
	case BoolVectorType:
		v.validateSize(t.Size, owner)
	case IntVectorType:
		v.validateSize(t.Size, owner)
	case MatrixType:
		v.validateSize(t.Size, owner)
	case StructType:
		if !v.context.structs[t.Name] {
			v.addError(fmt.Sprintf("%s: struct %q is not declared", owner, t.Name))
		}
	case ArrayType:
		if t.Size == 0 {
			v.addError(fmt.Sprintf("%s: array size must be positive", owner))
		}
		if _, nested := t.Base.(ArrayType); nested {
			v.addError(fmt.Sprintf("%s: arrays of arrays are not supported", owner))
		}
		v.validateType(t.Base, owner)
	}
}

func (v *Validator) validateSize(size VectorSize, owner string) {
	if size != Vec2 && size != Vec3 && size != Vec4 {
		v.addError(fmt.Sprintf("%s: size must be 2, 3, or 4, got %d", owner, size))
	}
}

func (v *Validator) validateStruct(s StmtStruct) {
	if len(s.Members) == 0 {
		v.addError(fmt.Sprintf("struct %q has no members", s.Name))
	}
	names := make(map[string]bool)
	for _, m := range s.Members {
		if names[m.Name] {
			v.addError(fmt.Sprintf("struct %q: duplicate member %q", s.Name, m.Name))
		}
		names[m.Name] = true
		v.validateType(m.Type, fmt.Sprintf("struct %s member %s", s.Name, m.Name))
		switch m.Type.(type) {
		case VoidType, SamplerType:
			v.addError(fmt.Sprintf("struct %q: member %q cannot have type %s", s.Name, m.Name, TypeName(m.Type)))
		}
	}
	v.context.structs[s.Name] = true
}

func (v *Validator) validatePrecision(p StmtPrecision) {
	if p.Precision == PrecisionDefault {
		v.addError("precision declaration without a qualifier")
	}
	switch p.Type.(type) {
	case nil, FloatType, IntType, SamplerType:
	default:
		v.addError(fmt.Sprintf("precision cannot be declared for %s", TypeName(p.Type)))
	}
}

func (v *Validator) validateInvariant(s StmtInvariant) {
	if _, ok := v.context.env.Lookup(s.Name); !ok {
		v.addError(fmt.Sprintf("invariant %q is not declared", s.Name))
		return
	}
	if v.context.qualifiers[s.Name] != QualifierVarying && !IsBuiltinVariable(s.Name) {
		v.addError(fmt.Sprintf("only varyings can be invariant, %q is not", s.Name))
	}
}

func (v *Validator) validateFunction(fn StmtFunction) {
	v.validateType(fn.Result, "result of "+fn.Name)
	if v.context.function != nil {
		v.addError(fmt.Sprintf("function %q declared inside function %q", fn.Name, v.context.functionName))
		return
	}
	if fn.Name == "main" && (len(fn.Parameters) != 0 || fn.Result != (VoidType{})) {
		v.addError("main must be declared as void main()")
	}

	// Declare before the body so recursion resolves, although GLSL ES
	// forbids it at link time.
	v.context.env.defineFunction(fn.Name, fn.Result)

	outer := v.context.env
	v.context.function = &fn
	v.context.functionName = fn.Name
	v.context.env = newScopeEnv(outer)
	defer func() {
		v.context.function = nil
		v.context.functionName = ""
		v.context.env = outer
	}()

	names := make(map[string]bool)
	for _, p := range fn.Parameters {
		if names[p.Name] {
			v.addErrorInFunction(fmt.Sprintf("duplicate parameter %q", p.Name))
		}
		names[p.Name] = true
		v.validateType(p.Type, "parameter "+p.Name)
		if _, ok := p.Type.(VoidType); ok {
			v.addErrorInFunction(fmt.Sprintf("parameter %q cannot have type void", p.Name))
		}
		v.context.env.define(p.Name, p.Type)
	}

	statement := v.context.statement
	v.validateBlock(fn.Body)
	v.context.statement = statement
}

// validateBlock validates a nested block in a child scope.
func (v *Validator) validateBlock(block Block) {
	outer := v.context.env
	v.context.env = newScopeEnv(outer)
	defer func() { v.context.env = outer }()

	for i, stmt := range block {
		v.context.statement = i
		v.validateStatement(stmt)
	}
}

//nolint:gocyclo,cyclop // Statement validation covers every statement kind
func (v *Validator) validateStatement(stmt Statement) {
	switch s := stmt.(type) {
	case StmtDeclare:
		if s.Qualifier.IsInterface() {
			v.addErrorInFunction(fmt.Sprintf("%s %q declared inside a function", s.Qualifier, s.Name))
		}
		v.validateDeclaration(s)

	case StmtAssign:
		v.validateAssign(s)

	case StmtControl:
		v.validateControl(s)

	case StmtIf:
		v.validateCondition(s.Condition, "if")
		v.validateBlock(s.Accept)
		v.validateBlock(s.Reject)

	case StmtFor:
		outer := v.context.env
		v.context.env = newScopeEnv(outer)
		v.validateDeclaration(s.Init)
		v.validateCondition(s.Condition, "for")
		v.validateAssign(s.Increment)
		v.context.loopDepth++
		v.validateBlock(s.Body)
		v.context.loopDepth--
		v.context.env = outer

	case StmtWhile:
		v.validateCondition(s.Condition, "while")
		v.context.loopDepth++
		v.validateBlock(s.Body)
		v.context.loopDepth--

	case StmtBlock:
		v.validateBlock(s.Body)

	case StmtIfdef:
		v.validateBlock(s.Accept)
		v.validateBlock(s.Reject)

	case StmtFunction:
		v.validateFunction(s)

	case StmtPrecision:
		v.validatePrecision(s)

	case StmtInvariant, StmtStruct:
		v.addErrorInFunction(fmt.Sprintf("%T is only allowed at global scope", stmt))

	default:
		v.addErrorInFunction(fmt.Sprintf("unsupported statement kind: %T", stmt))
	}
}

func (v *Validator) validateAssign(s StmtAssign) {
	target, ok := v.context.env.Lookup(s.Name)
	if !ok {
		v.addErrorInFunction(fmt.Sprintf("assignment to undeclared variable %q", s.Name))
		return
	}
	if v.context.readOnly[s.Name] {
		v.addErrorInFunction(fmt.Sprintf("cannot assign to read-only variable %q", s.Name))
	}

	if s.Op.HasValue() != (s.Value != nil) {
		v.addErrorInFunction(fmt.Sprintf("operator %s on %q: unexpected value presence", s.Op, s.Name))
		return
	}
	if int(s.Op) >= len(assignTokens) {
		v.addErrorInFunction(fmt.Sprintf("unknown assignment operator %d", uint8(s.Op)))
		return
	}

	switch s.Op {
	case AssignSet:
		value, ok := v.resolve(s.Value, "value of "+s.Name)
		if ok && !SameShape(value, target) {
			v.addErrorInFunction(fmt.Sprintf("cannot assign %s to %s %q", TypeName(value), TypeName(target), s.Name))
		}
	case AssignIncrement, AssignDecrement:
		if !isNumeric(target) {
			v.addErrorInFunction(fmt.Sprintf("operator %s needs a numeric operand, %q is %s", s.Op, s.Name, TypeName(target)))
		}
	default:
		if !isNumeric(target) {
			v.addErrorInFunction(fmt.Sprintf("operator %s needs a numeric operand, %q is %s", s.Op, s.Name, TypeName(target)))
			return
		}
		value, ok := v.resolve(s.Value, "value of "+s.Name)
		if !ok {
			return
		}
		result, err := arithmeticResult(compoundOperator(s.Op), target, value)
		if err != nil || !SameShape(result, target) {
			v.addErrorInFunction(fmt.Sprintf("cannot apply %s to %s %q and %s", s.Op, TypeName(target), s.Name, TypeName(value)))
		}
	}
}

// compoundOperator returns the binary operator behind a compound assignment.
func compoundOperator(op AssignOperator) BinaryOperator {
	switch op {
	case AssignAdd:
		return BinaryAdd
	case AssignSubtract:
		return BinarySubtract
	case AssignMultiply:
		return BinaryMultiply
	case AssignDivide:
		return BinaryDivide
	default:
		return BinaryModulo
	}
}

func isNumeric(t Type) bool {
	switch t.(type) {
	case IntType, FloatType, VectorType, IntVectorType, MatrixType:
		return true
	}
	return false
}

func (v *Validator) validateControl(s StmtControl) {
	switch s.Kind {
	case ControlReturn:
		result := v.context.function.Result
		if s.Value == nil {
			if result != (VoidType{}) {
				v.addErrorInFunction("missing return value")
			}
			return
		}
		if result == (VoidType{}) {
			v.addErrorInFunction("void function returns a value")
			return
		}
		if t, ok := v.resolve(s.Value, "return value"); ok && !SameShape(t, result) {
			v.addErrorInFunction(fmt.Sprintf("returns %s, want %s", TypeName(t), TypeName(result)))
		}
	case ControlBreak, ControlContinue:
		if s.Value != nil {
			v.addErrorInFunction(fmt.Sprintf("%s cannot carry a value", s.Kind))
		}
		if v.context.loopDepth == 0 {
			v.addErrorInFunction(fmt.Sprintf("%s outside of a loop", s.Kind))
		}
	case ControlDiscard:
		if s.Value != nil {
			v.addErrorInFunction("discard cannot carry a value")
		}
		if v.shader.Stage != StageFragment {
			v.addErrorInFunction("discard outside of a fragment shader")
		}
	default:
		v.addErrorInFunction(fmt.Sprintf("unknown control kind %d", uint8(s.Kind)))
	}
}

func (v *Validator) validateCondition(cond Expression, owner string) {
	t, ok := v.resolve(cond, owner+" condition")
	if ok && t != (BoolType{}) {
		v.addErrorInFunction(fmt.Sprintf("%s condition must be bool, got %s", owner, TypeName(t)))
	}
}

// resolve resolves expr in the current scope, recording a failure.
func (v *Validator) resolve(expr Expression, what string) (Type, bool) {
	t, err := ResolveType(v.context.env, expr)
	if err != nil {
		v.addErrorInFunction(fmt.Sprintf("%s: %v", what, err))
		return nil, false
	}
	return t, true
}

// addError adds a validation error at the current global statement.
func (v *Validator) addError(msg string) {
	v.errors = append(v.errors, ValidationError{
		Message:   msg,
		Statement: v.context.statement,
	})
}

// addErrorInFunction adds an error with function and statement context.
func (v *Validator) addErrorInFunction(msg string) {
	v.errors = append(v.errors, ValidationError{
		Message:   msg,
		Function:  v.context.functionName,
		Statement: v.context.statement,
	})
}
