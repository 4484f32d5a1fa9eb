// Package main is the entry point of lms-backend, a learning management REST API built
// on fiber and gorm. Organizations manage members, groups and email invitations;
// instructors publish courses with topics, content and quizzes; learners enroll, join
// course study groups, keep notes with attachments and train on listening, writing and
// reading practice.
package main
