/*
Package workers sizes the bounded worker pools used by the build.

A build runs two embarrassingly parallel phases: copying media files and
writing album pages. Each phase fans out one task per item, so the pool never
needs more workers than there are tasks:

	numWorkers := workers.ForCopy(len(tasks))   // min(8, tasks)
	numWorkers := workers.ForPages(len(albums)) // min(4, albums)

Both helpers wrap PoolSize, which always returns at least 1 so that callers
can pass the result straight to errgroup.Group.SetLimit.

# Environment Variable Override

Set GALLERY_WORKERS to replace the fixed caps, for example on a slow network
share where eight concurrent copies saturate the link:

	GALLERY_WORKERS=2 gallery build

Invalid values (non-numeric, zero, negative) are ignored and the default cap
applies.
*/
package workers
