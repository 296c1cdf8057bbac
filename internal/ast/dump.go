package ast

import (
	"fmt"
	"io"
)

// Dump writes an indented, numbered outline of block to w.
func Dump(w io.Writer, block Block) {
	dumpBlock(w, block, "")
}

func dumpBlock(w io.Writer, block Block, indent string) {
	for i, stmt := range block {
		switch s := stmt.(type) {
		case *If:
			fmt.Fprintf(w, "%s%d. IF %s [%s]\n", indent, i+1, s.Cond, s.Pos)
			dumpBlock(w, s.Then, indent+"   ")
			for _, ei := range s.ElseIfs {
				fmt.Fprintf(w, "%s   ELSEIF %s [%s]\n", indent, ei.Cond, ei.Pos)
				dumpBlock(w, ei.Block, indent+"   ")
			}
			if s.Else != nil {
				fmt.Fprintf(w, "%s   ELSE\n", indent)
				dumpBlock(w, *s.Else, indent+"   ")
			}
		case *ExpressionStatement:
			fmt.Fprintf(w, "%s%d. %s %s [%s]\n", indent, i+1, kind(s.Expr), s, s.Pos)
		default:
			fmt.Fprintf(w, "%s%d. <%T>\n", indent, i+1, stmt)
		}
	}
}

func kind(e Expression) string {
	switch e.(type) {
	case *Infix:
		return "INFIX"
	case *Call:
		return "CALL"
	default:
		return "EXPR"
	}
}
