package hir

import (
	"vetch/internal/source"
)

// ExprKind enumerates HIR expression kinds.
type ExprKind uint8

const (
	// ExprLiteral represents literals (int, float, bool, string, unit).
	ExprLiteral ExprKind = iota
	// ExprVarRef represents a variable or path reference.
	ExprVarRef
	// ExprBinaryOp represents binary operators.
	ExprBinaryOp
	// ExprCall represents a plain function call.
	ExprCall
	// ExprMethodCall represents a method call (receiver.method(args)).
	ExprMethodCall
	// ExprFieldAccess represents field access (expr.field).
	ExprFieldAccess
	// ExprBlock represents a block expression { stmts; tail }.
	ExprBlock
	// ExprIf represents a conditional with optional else branch.
	ExprIf
	// ExprMatch represents pattern matching over a scrutinee.
	ExprMatch
	// ExprRecordLit represents a record literal (Type { field: value, .. }).
	ExprRecordLit
	// ExprClosure represents a closure with its own body expression.
	ExprClosure
	// ExprReturn represents an explicit return.
	ExprReturn
	// ExprLoop represents an unconditional loop.
	ExprLoop
)

// String returns a human-readable name for the expression kind.
func (k ExprKind) String() string {
	switch k {
	case ExprLiteral:
		return "Literal"
	case ExprVarRef:
		return "VarRef"
	case ExprBinaryOp:
		return "BinaryOp"
	case ExprCall:
		return "Call"
	case ExprMethodCall:
		return "MethodCall"
	case ExprFieldAccess:
		return "FieldAccess"
	case ExprBlock:
		return "Block"
	case ExprIf:
		return "If"
	case ExprMatch:
		return "Match"
	case ExprRecordLit:
		return "RecordLit"
	case ExprClosure:
		return "Closure"
	case ExprReturn:
		return "Return"
	case ExprLoop:
		return "Loop"
	default:
		return "Unknown"
	}
}

// Expr represents an HIR expression node.
type Expr struct {
	Kind ExprKind
	Span source.Span
	Data ExprData
}

// ExprData is the interface for expression-specific payloads.
type ExprData interface {
	exprData()
}

// LiteralKind enumerates literal value kinds.
type LiteralKind uint8

const (
	LiteralInt LiteralKind = iota
	LiteralFloat
	LiteralBool
	LiteralString
	LiteralUnit
)

// LiteralData holds data for ExprLiteral.
type LiteralData struct {
	Kind LiteralKind
	Text string // raw literal text
}

func (LiteralData) exprData() {}

// VarRefData holds data for ExprVarRef.
type VarRefData struct {
	Name string
}

func (VarRefData) exprData() {}

// BinaryOpData holds data for ExprBinaryOp.
type BinaryOpData struct {
	Op    string
	Left  ExprID
	Right ExprID
}

func (BinaryOpData) exprData() {}

// CallData holds data for ExprCall.
type CallData struct {
	Callee ExprID
	Args   []ExprID
}

func (CallData) exprData() {}

// MethodCallData holds data for ExprMethodCall. The callee function is
// resolved by inference, not stored here.
type MethodCallData struct {
	Receiver ExprID
	Method   string
	Args     []ExprID
}

func (MethodCallData) exprData() {}

// FieldAccessData holds data for ExprFieldAccess.
type FieldAccessData struct {
	Object ExprID
	Field  string
}

func (FieldAccessData) exprData() {}

// StmtKind enumerates block statement kinds.
type StmtKind uint8

const (
	// StmtLet binds a pattern to an optional initializer.
	StmtLet StmtKind = iota
	// StmtExpr evaluates an expression for effect.
	StmtExpr
)

// Stmt is one statement of a block.
type Stmt struct {
	Kind StmtKind
	Pat  PatID  // StmtLet
	Init ExprID // StmtLet (NoExprID when absent)
	Expr ExprID // StmtExpr
}

// BlockData holds data for ExprBlock. Tail is the block's trailing value
// expression, NoExprID when the block ends with a statement.
type BlockData struct {
	Stmts []Stmt
	Tail  ExprID
}

func (BlockData) exprData() {}

// IfData holds data for ExprIf. Else is NoExprID when the branch is absent.
type IfData struct {
	Cond ExprID
	Then ExprID
	Else ExprID
}

func (IfData) exprData() {}

// MatchArm is one arm of a match expression.
type MatchArm struct {
	Pat   PatID
	Guard ExprID // NoExprID when unguarded
	Expr  ExprID
}

// MatchData holds data for ExprMatch.
type MatchData struct {
	Scrutinee ExprID
	Arms      []MatchArm
}

func (MatchData) exprData() {}

// RecordFieldInit is one named field initializer in a record literal.
type RecordFieldInit struct {
	Name string
	Expr ExprID
}

// RecordLitData holds data for ExprRecordLit.
//
// Spread is the base-struct expression of update syntax (Type { f: v, ..base });
// Ellipsis marks a bare `..` in assignee position. IsAssignee distinguishes
// destructuring-assignment targets from value-producing literals.
type RecordLitData struct {
	Path       string
	Fields     []RecordFieldInit
	Spread     ExprID
	Ellipsis   bool
	IsAssignee bool
}

func (RecordLitData) exprData() {}

// ClosureData holds data for ExprClosure.
type ClosureData struct {
	Params []PatID
	Body   ExprID
}

func (ClosureData) exprData() {}

// ReturnData holds data for ExprReturn. Value is NoExprID for bare returns.
type ReturnData struct {
	Value ExprID
}

func (ReturnData) exprData() {}

// LoopData holds data for ExprLoop.
type LoopData struct {
	Body ExprID
}

func (LoopData) exprData() {}
