package effect

// Queue runs pushed tasks one at a time in push order. Task N+1 is not
// started until task N has called its done callback.
type Queue struct {
	tasks   []Task
	next    int
	started bool
	final   Done
}

// NewQueue returns an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Push appends a task. Tasks pushed while the queue is running are picked up
// before the final continuation fires.
func (q *Queue) Push(task Task) {
	q.tasks = append(q.tasks, task)
}

// ContinueWith starts the queue and invokes final once every task is done.
// An empty queue invokes final immediately. Calling ContinueWith a second
// time has no effect.
func (q *Queue) ContinueWith(final Done) {
	if q.started {
		return
	}
	q.started = true
	q.final = Once(final)
	q.runNext()
}

func (q *Queue) runNext() {
	if q.next >= len(q.tasks) {
		q.final()
		return
	}
	task := q.tasks[q.next]
	q.next++
	task(Once(q.runNext))
}
