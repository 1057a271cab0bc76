// Package stream provides the structural event model shared by the
// streaming parsers.
//
// A parser in event mode emits one Event per call: ObjectStart, ObjectEnd,
// ArrayStart, ArrayEnd, Key and Value.  A Builder folds such a sequence
// into an ir.Value using an explicit stack, so callers may inspect events
// as they arrive and still obtain the tree at the end.
//
// # Example
//
//	p := json.NewParser(input)
//	b := stream.NewBuilder()
//	for {
//	    ev, err := p.NextEvent()
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	    if err := b.Push(ev); err != nil {
//	        return err
//	    }
//	}
//	v := b.Value()
//
// ValueToEvents produces the inverse sequence from a tree.  State validates
// event order and tracks the path of the current event for diagnostics.
package stream
