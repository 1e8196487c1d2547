// Package config loads fileroutes.json project configuration.
//
// # Configuration File Structure
//
//	{
//	  "routes": "app/routes",
//	  "extensions": [".go", ".templ"],
//	  "conventions": {
//	    "index": "index",
//	    "layout": "_layout",
//	    "paramPrefix": "$",
//	    "splat": "$",
//	    "delimiter": "."
//	  },
//	  "source": {
//	    "type": "s3",
//	    "bucket": "site-routes",
//	    "prefix": "app/routes/"
//	  },
//	  "serve": {
//	    "host": "localhost",
//	    "port": 3000,
//	    "watch": true,
//	    "debounce": "100ms"
//	  },
//	  "metrics": {
//	    "enabled": true,
//	    "namespace": "fileroutes"
//	  }
//	}
//
// Missing fields take their defaults. Relative paths are resolved against
// the directory holding the config file.
package config
