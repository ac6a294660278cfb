package tasksync

import "time"

// NoticeTTL is how long a notice stays visible before it clears itself.
const NoticeTTL = 3 * time.Second

// Notice is a transient, auto-expiring toast. Seq lets an event loop tie a
// delayed "expire" message to the notice it was armed for, so a newer notice
// is never cleared by an older notice's timer.
type Notice struct {
	Text string
	At   time.Time
	Seq  int
}

// Notices holds the current toast. Pushing replaces any visible notice;
// correctness of the sync core never depends on it.
type Notices struct {
	cur    *Notice
	seq    int
	pushed int
	now    func() time.Time
}

func NewNotices() *Notices {
	return &Notices{now: time.Now}
}

func (n *Notices) Push(text string) Notice {
	n.seq++
	n.pushed++
	nt := Notice{Text: text, At: n.now(), Seq: n.seq}
	n.cur = &nt
	return nt
}

// Active returns the current notice if it has not yet expired.
func (n *Notices) Active() (Notice, bool) {
	if n.cur == nil {
		return Notice{}, false
	}
	if n.now().Sub(n.cur.At) >= NoticeTTL {
		n.cur = nil
		return Notice{}, false
	}
	return *n.cur, true
}

// Expire clears the notice with the given seq; a stale seq is ignored.
func (n *Notices) Expire(seq int) {
	if n.cur != nil && n.cur.Seq == seq {
		n.cur = nil
	}
}

// Pushed reports how many notices have been raised in total.
func (n *Notices) Pushed() int { return n.pushed }
