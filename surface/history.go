package surface

type snapshot struct {
	content string
	sel     Range
}

type historyState struct {
	undo []snapshot
	redo []snapshot
}

func (d *DOM) snapshot() snapshot {
	return snapshot{content: d.Content(), sel: d.sel}
}

// restore rebuilds the tree from s. Image handles from before the restore
// stop resolving.
func (d *DOM) restore(s snapshot) {
	d.load(s.content)
	d.sel = d.clampRange(s.sel)
}

func (d *DOM) recordUndo(prev snapshot) {
	limit := d.opt.HistoryLimit
	if limit <= 0 {
		return
	}

	d.hist.undo = append(d.hist.undo, prev)
	if len(d.hist.undo) > limit {
		d.hist.undo = d.hist.undo[len(d.hist.undo)-limit:]
	}
	d.hist.redo = nil
}

func (d *DOM) CanUndo() bool { return len(d.hist.undo) > 0 }

func (d *DOM) CanRedo() bool { return len(d.hist.redo) > 0 }

func (d *DOM) Undo() bool {
	if len(d.hist.undo) == 0 {
		return false
	}

	cur := d.snapshot()
	i := len(d.hist.undo) - 1
	prev := d.hist.undo[i]
	d.hist.undo = d.hist.undo[:i]
	d.hist.redo = append(d.hist.redo, cur)

	d.restore(prev)
	d.notify()
	return true
}

func (d *DOM) Redo() bool {
	if len(d.hist.redo) == 0 {
		return false
	}

	cur := d.snapshot()
	i := len(d.hist.redo) - 1
	next := d.hist.redo[i]
	d.hist.redo = d.hist.redo[:i]

	if limit := d.opt.HistoryLimit; limit > 0 {
		d.hist.undo = append(d.hist.undo, cur)
		if len(d.hist.undo) > limit {
			d.hist.undo = d.hist.undo[len(d.hist.undo)-limit:]
		}
	}

	d.restore(next)
	d.notify()
	return true
}
