package ast

// Walk visits every declaration in the file in pre-order, depth first. The
// visit function returns true to stop the walk; Walk reports whether the
// walk was stopped. Parameters are not visited on their own — they are
// reachable through their owning operation.
func Walk(file *File, visit func(Entity) bool) bool {
	for _, module := range file.Modules {
		if walkEntity(module, visit) {
			return true
		}
	}
	return false
}

func walkEntity(entity Entity, visit func(Entity) bool) bool {
	if visit(entity) {
		return true
	}
	switch decl := entity.(type) {
	case *Module:
		for _, nested := range decl.Contents {
			if walkEntity(nested, visit) {
				return true
			}
		}
	case *Struct:
		for _, field := range decl.Fields {
			if walkEntity(field, visit) {
				return true
			}
		}
	case *Class:
		for _, field := range decl.Fields {
			if walkEntity(field, visit) {
				return true
			}
		}
	case *Exception:
		for _, field := range decl.Fields {
			if walkEntity(field, visit) {
				return true
			}
		}
	case *Interface:
		for _, op := range decl.Operations {
			if walkEntity(op, visit) {
				return true
			}
		}
	case *Enum:
		for _, enumerator := range decl.Enumerators {
			if walkEntity(enumerator, visit) {
				return true
			}
		}
	}
	return false
}
