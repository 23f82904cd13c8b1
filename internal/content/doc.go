// package content loads the syllabus catalog: works grouped by era and
// composer biographies. Data ships embedded in the binary; config may point
// at external JSON files instead. Load failures surface as errors for the
// caller to display inline — there is no automatic retry.
package content
