package s3

// Object is a fully read S3 object.
type Object struct {
	Key                string
	Body               []byte
	ContentType        string
	ContentDisposition string
}
