// package services defines interface Service for talking to a remote
// syllabus sync backend over HTTP.
//
// The backend is optional: the application is fully functional offline, and
// every caller treats a failing service as a degraded feature, not a fatal
// condition.
package services
