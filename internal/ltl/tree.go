package ltl

import (
	"encoding/json"
	"fmt"
)

// treeNode is the JSON form of a formula tree. Exactly one of the
// leaf fields or Op must be set. Operators use the canonical
// spellings of op.go.
type treeNode struct {
	Num   *int       `json:"num,omitempty"`
	Var   *string    `json:"var,omitempty"`
	Const *string    `json:"const,omitempty"`
	Bool  *bool      `json:"bool,omitempty"`
	Op    string     `json:"op,omitempty"`
	Args  []treeNode `json:"args,omitempty"`
}

// MarshalTree serializes a formula tree to its JSON form.
func MarshalTree(n Node) ([]byte, error) {
	t, err := toTreeNode(n)
	if err != nil {
		return nil, err
	}
	return json.Marshal(t)
}

// UnmarshalTree parses the JSON form back into a formula tree.
func UnmarshalTree(data []byte) (Node, error) {
	var t treeNode
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse formula tree: %w", err)
	}
	return fromTreeNode(t)
}

func toTreeNode(n Node) (treeNode, error) {
	switch v := n.(type) {
	case *Num:
		return treeNode{Num: &v.Value}, nil
	case *Var:
		return treeNode{Var: &v.Name}, nil
	case *Const:
		return treeNode{Const: &v.Value}, nil
	case *Bool:
		return treeNode{Bool: &v.Value}, nil
	case *Unary:
		o, err := toTreeNode(v.Operand)
		if err != nil {
			return treeNode{}, err
		}
		return treeNode{Op: v.Op.String(), Args: []treeNode{o}}, nil
	case *Binary:
		l, err := toTreeNode(v.Left)
		if err != nil {
			return treeNode{}, err
		}
		r, err := toTreeNode(v.Right)
		if err != nil {
			return treeNode{}, err
		}
		return treeNode{Op: v.Op.String(), Args: []treeNode{l, r}}, nil
	}
	return treeNode{}, fmt.Errorf("ltl: unknown node type %T", n)
}

func fromTreeNode(t treeNode) (Node, error) {
	switch {
	case t.Num != nil:
		return &Num{Value: *t.Num}, nil
	case t.Var != nil:
		return &Var{Name: *t.Var}, nil
	case t.Const != nil:
		return &Const{Value: *t.Const}, nil
	case t.Bool != nil:
		return &Bool{Value: *t.Bool}, nil
	case t.Op != "":
		op, ok := opForCanonical[t.Op]
		if !ok {
			return nil, fmt.Errorf("unknown operator %q in formula tree", t.Op)
		}
		if len(t.Args) != op.Arity() {
			return nil, fmt.Errorf("operator %q expects %d operands, got %d",
				t.Op, op.Arity(), len(t.Args))
		}
		if op.Arity() == 1 {
			o, err := fromTreeNode(t.Args[0])
			if err != nil {
				return nil, err
			}
			return &Unary{Op: op, Operand: o}, nil
		}
		l, err := fromTreeNode(t.Args[0])
		if err != nil {
			return nil, err
		}
		r, err := fromTreeNode(t.Args[1])
		if err != nil {
			return nil, err
		}
		return &Binary{Op: op, Left: l, Right: r}, nil
	}
	return nil, fmt.Errorf("empty formula tree node")
}
